package simulator

import (
	"strings"

	"github.com/shopspring/decimal"
)

type Outcome string

const (
	OutcomeSuccess           Outcome = "success"
	OutcomeInsufficientFunds Outcome = "insufficient_funds"
	OutcomeAccountNotFound   Outcome = "account_not_found"
	OutcomeFailed            Outcome = "failed"
)

// Scenario is a hypothetical payer used to preview a transfer.
type Scenario struct {
	Name           string  `json:"name"`
	PayerBalance   string  `json:"payerBalance"`
	ExpectedResult Outcome `json:"expectedResult"`
}

// TransactionFee is the flat signature fee of a single-signer transfer, in SOL.
var TransactionFee = decimal.RequireFromString("0.000005")

var Scenarios = []Scenario{
	{Name: "Sufficient Balance", PayerBalance: "10", ExpectedResult: OutcomeSuccess},
	{Name: "Insufficient SOL", PayerBalance: "0.0001", ExpectedResult: OutcomeInsufficientFunds},
	{Name: "Empty Wallet", PayerBalance: "0", ExpectedResult: OutcomeInsufficientFunds},
}

// FindScenario looks a scenario up by name, ignoring case.
func FindScenario(name string) (Scenario, bool) {
	for _, s := range Scenarios {
		if strings.EqualFold(s.Name, strings.TrimSpace(name)) {
			return s, true
		}
	}
	return Scenario{}, false
}

type Request struct {
	Recipient string `json:"recipient" validate:"required,solana_address"`
	Amount    string `json:"amount" validate:"required,amount"`
	Network   string `json:"network"`
	Scenario  string `json:"scenario" validate:"required"`
	// Payer, when set, is used as the fee payer of an RPC simulation.
	Payer string `json:"payer" validate:"omitempty,solana_address"`
}

type Result struct {
	Success         bool     `json:"success"`
	Outcome         Outcome  `json:"outcome"`
	Scenario        string   `json:"scenario"`
	Reason          string   `json:"reason,omitempty"`
	TransactionFee  string   `json:"transactionFee"`
	RequiredBalance string   `json:"requiredBalance"`
	PayerBalance    string   `json:"payerBalance"`
	OnChain         bool     `json:"onChain"`
	Logs            []string `json:"logs,omitempty"`
	UnitsConsumed   uint64   `json:"unitsConsumed,omitempty"`
}
