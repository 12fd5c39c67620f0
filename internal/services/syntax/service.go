// Package syntax validates Solana Pay URLs offline.
package syntax

import (
	"strings"

	"solpay/internal/solanapay"
	"solpay/internal/validation"
)

// Parsed echoes the fields that passed validation.
type Parsed struct {
	Kind       solanapay.Kind `json:"kind"`
	Recipient  string         `json:"recipient,omitempty"`
	Amount     string         `json:"amount,omitempty"`
	Token      string         `json:"token,omitempty"`
	Reference  string         `json:"reference,omitempty"`
	References []string       `json:"references,omitempty"`
	Label      string         `json:"label,omitempty"`
	Message    string         `json:"message,omitempty"`
	Memo       string         `json:"memo,omitempty"`
	Link       string         `json:"link,omitempty"`
}

// Outcome is the result of ValidateSyntax. Parsed is nil unless Valid.
type Outcome struct {
	Valid    bool               `json:"valid"`
	Errors   []validation.Issue `json:"errors"`
	Warnings []validation.Issue `json:"warnings"`
	Parsed   *Parsed            `json:"parsed,omitempty"`
}

// ValidateSyntax checks a raw Solana Pay URL. It has no state and returns the
// same outcome for the same input.
func ValidateSyntax(raw string) Outcome {
	v := validation.New()

	if !strings.HasPrefix(raw, solanapay.Prefix) {
		v.AddError("scheme", validation.CodeInvalidScheme, "URL must start with solana:")
		return outcome(v, nil)
	}

	decoded, err := solanapay.Decode(raw)
	if err != nil {
		v.AddError("parse", validation.CodeParseError, "Failed to parse Solana Pay URL")
		return outcome(v, nil)
	}

	if decoded.Kind == solanapay.KindTransactionRequest {
		// Only the endpoint can build the transaction; nothing else to check offline.
		return outcome(v, &Parsed{
			Kind:    decoded.Kind,
			Link:    decoded.Link,
			Label:   decoded.Label,
			Message: decoded.Message,
		})
	}

	parsed := &Parsed{Kind: decoded.Kind}

	if v.Recipient("recipient", decoded.Recipient) {
		parsed.Recipient = decoded.Recipient
	}

	if decoded.Amount != "" && v.Amount("amount", decoded.Amount) {
		parsed.Amount = decoded.Amount
	}

	if decoded.SPLToken != "" &&
		v.Address("splToken", validation.CodeInvalidToken, "Invalid SPL token mint", decoded.SPLToken) {
		parsed.Token = decoded.SPLToken
	}

	for _, ref := range decoded.References {
		if !validation.IsValidAddress(ref) {
			v.AddWarning("reference", validation.CodeInvalidReference, "Invalid reference format")
			continue
		}
		parsed.References = append(parsed.References, ref)
	}
	if len(parsed.References) > 0 {
		parsed.Reference = parsed.References[0]
	}

	if decoded.Label != "" &&
		v.MaxLength("label", validation.CodeLabelTooLong, decoded.Label, validation.MaxLabelLength) {
		parsed.Label = decoded.Label
	}

	if decoded.Message != "" &&
		v.MaxLength("message", validation.CodeMessageTooLong, decoded.Message, validation.MaxMessageLength) {
		parsed.Message = decoded.Message
	}

	parsed.Memo = decoded.Memo

	return outcome(v, parsed)
}

func outcome(v *validation.Validator, parsed *Parsed) Outcome {
	out := Outcome{
		Valid:    v.Valid(),
		Errors:   v.Errors,
		Warnings: v.Warnings,
	}
	if out.Valid {
		out.Parsed = parsed
	}
	return out
}
