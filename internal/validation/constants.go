package validation

const (
	// DefaultMaxDecimals matches the 9 decimal places of one lamport.
	DefaultMaxDecimals = 9

	// Solana Pay metadata limits
	MaxLabelLength   = 128
	MaxMessageLength = 2048
)

// Issue codes reported in validation outcomes.
const (
	CodeInvalidScheme    = "INVALID_SCHEME"
	CodeParseError       = "PARSE_ERROR"
	CodeInvalidRecipient = "INVALID_RECIPIENT"
	CodeInvalidAmount    = "INVALID_AMOUNT"
	CodeInvalidToken     = "INVALID_TOKEN"
	CodeInvalidReference = "INVALID_REFERENCE"
	CodeLabelTooLong     = "LABEL_TOO_LONG"
	CodeMessageTooLong   = "MESSAGE_TOO_LONG"
	CodeInvalidMemo      = "INVALID_MEMO"
)
