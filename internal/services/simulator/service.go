// Package simulator previews SOL transfers against hypothetical payer
// balances, optionally confirming them with an RPC simulation.
package simulator

import (
	"context"
	"fmt"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/rs/zerolog"

	"solpay/internal/metrics"
	"solpay/internal/services/onchain"
	"solpay/internal/solanapay"
	"solpay/internal/validation"
)

type service struct {
	clients        ClientProvider
	defaultNetwork onchain.Network
	log            zerolog.Logger
}

// NewService creates a simulator. clients may be nil, in which case requests
// carrying a payer are still answered from the scenario balance alone.
func NewService(clients ClientProvider, defaultNetwork onchain.Network, log zerolog.Logger) Service {
	if defaultNetwork == "" {
		defaultNetwork = onchain.Devnet
	}
	return &service{
		clients:        clients,
		defaultNetwork: defaultNetwork,
		log:            log.With().Str("component", "simulator").Logger(),
	}
}

func (s *service) Scenarios() []Scenario {
	out := make([]Scenario, len(Scenarios))
	copy(out, Scenarios)
	return out
}

func (s *service) Simulate(ctx context.Context, req Request) (*Result, error) {
	req.Recipient = strings.TrimSpace(req.Recipient)
	req.Amount = strings.TrimSpace(req.Amount)
	req.Payer = strings.TrimSpace(req.Payer)
	if issues := validation.Struct(req); len(issues) > 0 {
		return nil, &ValidationError{Issues: issues}
	}

	scenario, ok := FindScenario(req.Scenario)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScenario, req.Scenario)
	}

	network := s.defaultNetwork
	if req.Network != "" {
		var err error
		if network, err = onchain.ParseNetwork(req.Network); err != nil {
			return nil, err
		}
	}

	amount, err := validation.ParseAmount(req.Amount)
	if err != nil {
		return nil, err
	}
	balance, err := validation.ParseAmount(scenario.PayerBalance)
	if err != nil {
		return nil, fmt.Errorf("scenario %q: %w", scenario.Name, err)
	}
	required := amount.Add(TransactionFee)

	res := &Result{
		Outcome:         OutcomeSuccess,
		Scenario:        scenario.Name,
		TransactionFee:  TransactionFee.String(),
		RequiredBalance: required.String(),
		PayerBalance:    balance.String(),
	}

	// The scenario balance decides first; the chain never sees a transfer
	// the hypothetical payer could not afford.
	if balance.LessThan(required) {
		res.Outcome = OutcomeInsufficientFunds
		res.Reason = UserMessage("insufficient funds")
		metrics.RecordSimulation(string(network), string(res.Outcome))
		return res, nil
	}

	if req.Payer != "" && s.clients != nil {
		s.simulateOnChain(ctx, network, req, solanapay.SOLToLamports(amount), res)
	}

	res.Success = res.Outcome == OutcomeSuccess
	metrics.RecordSimulation(string(network), string(res.Outcome))
	return res, nil
}

// simulateOnChain runs the transfer through simulateTransaction with
// signature checks off and updates res with the cluster's verdict.
func (s *service) simulateOnChain(ctx context.Context, network onchain.Network, req Request, lamports uint64, res *Result) {
	fail := func(outcome Outcome, raw string) {
		res.Outcome = outcome
		res.Reason = UserMessage(raw)
	}

	client, err := s.clients.Client(network)
	if err != nil {
		fail(OutcomeFailed, err.Error())
		return
	}

	tx, err := buildTransfer(ctx, client, req.Payer, req.Recipient, lamports)
	if err != nil {
		s.log.Warn().Err(err).Str("network", string(network)).Msg("failed to build simulation transaction")
		fail(OutcomeFailed, err.Error())
		return
	}

	resp, err := client.SimulateTransactionWithOpts(ctx, tx, &rpc.SimulateTransactionOpts{
		SigVerify:              false,
		Commitment:             rpc.CommitmentProcessed,
		ReplaceRecentBlockhash: true,
	})
	if err != nil {
		s.log.Warn().Err(err).Str("network", string(network)).Msg("simulation request failed")
		fail(OutcomeFailed, err.Error())
		return
	}
	res.OnChain = true
	if resp == nil || resp.Value == nil {
		fail(OutcomeFailed, "Transaction simulation failed")
		return
	}

	res.Logs = resp.Value.Logs
	if resp.Value.UnitsConsumed != nil {
		res.UnitsConsumed = *resp.Value.UnitsConsumed
	}
	if resp.Value.Err != nil {
		raw := fmt.Sprint(resp.Value.Err)
		switch lower := strings.ToLower(raw); {
		case strings.Contains(lower, "accountnotfound"):
			fail(OutcomeAccountNotFound, raw)
		case strings.Contains(lower, "insufficient"):
			fail(OutcomeInsufficientFunds, raw)
		default:
			fail(OutcomeFailed, raw)
		}
	}
}

func buildTransfer(ctx context.Context, client RPCClient, payer, recipient string, lamports uint64) (*solana.Transaction, error) {
	from, err := validation.ParseAddress(payer)
	if err != nil {
		return nil, err
	}
	to, err := validation.ParseAddress(recipient)
	if err != nil {
		return nil, err
	}

	latest, err := client.GetLatestBlockhash(ctx, rpc.CommitmentFinalized)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent blockhash: %w", err)
	}
	if latest == nil || latest.Value == nil {
		return nil, fmt.Errorf("failed to get recent blockhash: empty response")
	}

	tx, err := solana.NewTransaction(
		[]solana.Instruction{system.NewTransferInstruction(lamports, from, to).Build()},
		latest.Value.Blockhash,
		solana.TransactionPayer(from),
	)
	if err != nil {
		return nil, fmt.Errorf("build transfer: %w", err)
	}
	// The validator still expects one signature slot per signer.
	tx.Signatures = make([]solana.Signature, tx.Message.Header.NumRequiredSignatures)
	return tx, nil
}
