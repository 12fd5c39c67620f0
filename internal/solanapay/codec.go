// Package solanapay encodes and decodes `solana:` payment request URLs.
//
// Decode is purely structural: it splits a URL into its transfer or
// transaction-request fields without judging whether the recipient, amount
// or keys are valid. Field validation lives in the syntax service.
package solanapay

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"solpay/internal/validation"
)

const (
	Scheme = "solana"
	Prefix = Scheme + ":"

	paramAmount    = "amount"
	paramSPLToken  = "spl-token"
	paramReference = "reference"
	paramLabel     = "label"
	paramMessage   = "message"
	paramMemo      = "memo"
)

// Kind tells the two URL shapes apart.
type Kind string

const (
	KindTransfer           Kind = "transfer"
	KindTransactionRequest Kind = "transactionRequest"
)

var plainAmount = regexp.MustCompile(`^\d+(\.\d+)?$`)

var (
	ErrMissingScheme   = errors.New("url must start with solana:")
	ErrMissingPathname = errors.New("pathname missing")
	ErrInvalidLink     = errors.New("link invalid")
	ErrLinkProtocol    = errors.New("link must use https")
	ErrInvalidQuery    = errors.New("query string invalid")
)

// ParseError wraps every Decode failure.
type ParseError struct {
	URL string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse solana pay url: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// TransferRequest is the structured form of a transfer URL.
type TransferRequest struct {
	Recipient  string   `json:"recipient"`
	Amount     string   `json:"amount,omitempty"`
	SPLToken   string   `json:"splToken,omitempty"`
	References []string `json:"references,omitempty"`
	Label      string   `json:"label,omitempty"`
	Message    string   `json:"message,omitempty"`
	Memo       string   `json:"memo,omitempty"`
}

// ParsedURL is the result of Decode. Recipient and the transfer fields are set
// only for KindTransfer; Link only for KindTransactionRequest.
type ParsedURL struct {
	Kind Kind `json:"kind"`

	Recipient  string   `json:"recipient,omitempty"`
	Amount     string   `json:"amount,omitempty"`
	SPLToken   string   `json:"splToken,omitempty"`
	References []string `json:"references,omitempty"`
	Memo       string   `json:"memo,omitempty"`

	Link string `json:"link,omitempty"`

	Label   string `json:"label,omitempty"`
	Message string `json:"message,omitempty"`
}

// TransferRequest returns the transfer fields of a transfer URL.
func (p *ParsedURL) TransferRequest() (TransferRequest, bool) {
	if p.Kind != KindTransfer {
		return TransferRequest{}, false
	}
	return TransferRequest{
		Recipient:  p.Recipient,
		Amount:     p.Amount,
		SPLToken:   p.SPLToken,
		References: p.References,
		Label:      p.Label,
		Message:    p.Message,
		Memo:       p.Memo,
	}, true
}

// Encode builds a transfer URL. Absent optional fields are omitted. Keys and
// the amount must be well formed; metadata is passed through as is.
func Encode(req TransferRequest) (string, error) {
	if _, err := validation.ParseAddress(req.Recipient); err != nil {
		return "", fmt.Errorf("recipient: %w", err)
	}

	params := make([]string, 0, 6)
	if req.Amount != "" {
		amount, err := validation.ParseAmount(req.Amount)
		if err != nil {
			return "", fmt.Errorf("amount: %w", err)
		}
		if amount.IsNegative() {
			return "", errors.New("amount: must not be negative")
		}
		if !plainAmount.MatchString(req.Amount) {
			req.Amount = amount.String()
		}
		params = append(params, paramAmount+"="+req.Amount)
	}
	if req.SPLToken != "" {
		if _, err := validation.ParseAddress(req.SPLToken); err != nil {
			return "", fmt.Errorf("spl-token: %w", err)
		}
		params = append(params, paramSPLToken+"="+req.SPLToken)
	}
	for _, ref := range req.References {
		if _, err := validation.ParseAddress(ref); err != nil {
			return "", fmt.Errorf("reference: %w", err)
		}
		params = append(params, paramReference+"="+ref)
	}
	if req.Label != "" {
		params = append(params, paramLabel+"="+url.QueryEscape(req.Label))
	}
	if req.Message != "" {
		params = append(params, paramMessage+"="+url.QueryEscape(req.Message))
	}
	if req.Memo != "" {
		params = append(params, paramMemo+"="+url.QueryEscape(req.Memo))
	}

	out := Prefix + req.Recipient
	if len(params) > 0 {
		out += "?" + strings.Join(params, "&")
	}
	return out, nil
}

// Decode splits a `solana:` URL into its fields.
func Decode(raw string) (*ParsedURL, error) {
	if !strings.HasPrefix(raw, Prefix) {
		return nil, &ParseError{URL: raw, Err: ErrMissingScheme}
	}

	rest := strings.TrimPrefix(raw, Prefix)
	if i := strings.IndexByte(rest, '#'); i >= 0 {
		rest = rest[:i]
	}
	pathname, rawQuery, _ := strings.Cut(rest, "?")
	if pathname == "" {
		return nil, &ParseError{URL: raw, Err: ErrMissingPathname}
	}

	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		return nil, &ParseError{URL: raw, Err: fmt.Errorf("%w: %v", ErrInvalidQuery, err)}
	}

	if strings.ContainsAny(pathname, ":%") {
		return decodeTransactionRequest(raw, pathname, query)
	}
	return decodeTransfer(pathname, query), nil
}

func decodeTransactionRequest(raw, pathname string, query url.Values) (*ParsedURL, error) {
	decoded, err := url.PathUnescape(pathname)
	if err != nil {
		return nil, &ParseError{URL: raw, Err: fmt.Errorf("%w: %v", ErrInvalidLink, err)}
	}
	link, err := url.Parse(decoded)
	if err != nil || link.Host == "" {
		return nil, &ParseError{URL: raw, Err: ErrInvalidLink}
	}
	if link.Scheme != "https" {
		return nil, &ParseError{URL: raw, Err: ErrLinkProtocol}
	}

	return &ParsedURL{
		Kind:    KindTransactionRequest,
		Link:    link.String(),
		Label:   query.Get(paramLabel),
		Message: query.Get(paramMessage),
	}, nil
}

func decodeTransfer(pathname string, query url.Values) *ParsedURL {
	refs := query[paramReference]
	if len(refs) == 0 {
		refs = nil
	}
	return &ParsedURL{
		Kind:       KindTransfer,
		Recipient:  pathname,
		Amount:     query.Get(paramAmount),
		SPLToken:   query.Get(paramSPLToken),
		References: refs,
		Label:      query.Get(paramLabel),
		Message:    query.Get(paramMessage),
		Memo:       query.Get(paramMemo),
	}
}
