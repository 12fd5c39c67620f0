// Package onchain cross-checks a payment recipient against live chain state.
//
// Every failure, including transport errors, collapses into the same
// fail-closed Validation. The caller owns retries and deadlines.
package onchain

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/rs/zerolog"

	"solpay/internal/metrics"
	"solpay/internal/validation"
)

type service struct {
	clients ClientProvider
	log     zerolog.Logger
}

// NewService creates a new on-chain validation service
func NewService(clients ClientProvider, log zerolog.Logger) Service {
	if clients == nil {
		panic("client provider is required")
	}
	return &service{
		clients: clients,
		log:     log.With().Str("component", "onchain").Logger(),
	}
}

func (s *service) ValidateOnChain(ctx context.Context, recipient string, network Network, tokenMint string) Validation {
	result := s.validate(ctx, recipient, network, tokenMint)
	metrics.RecordOnChainValidation(string(network), result.Valid, result.AccountExists, result.IsExecutable)
	return result
}

func (s *service) validate(ctx context.Context, recipient string, network Network, tokenMint string) Validation {
	owner, err := validation.ParseAddress(recipient)
	if err != nil {
		return failClosed()
	}

	client, err := s.clients.Client(network)
	if err != nil {
		s.log.Warn().Err(err).Str("network", string(network)).Msg("no rpc client for network")
		return failClosed()
	}

	info, err := client.GetAccountInfo(ctx, owner)
	if err != nil {
		if !errors.Is(err, rpc.ErrNotFound) {
			s.log.Warn().Err(err).Str("network", string(network)).Str("recipient", recipient).Msg("account lookup failed")
		}
		return failClosed()
	}
	if info == nil || info.Value == nil {
		return failClosed()
	}

	if info.Value.Executable {
		return Validation{AccountExists: true, IsExecutable: true}
	}

	result := Validation{
		Valid:         true,
		AccountExists: true,
		Balance:       strconv.FormatUint(info.Value.Lamports, 10),
	}

	if tokenMint != "" {
		exists, err := s.tokenAccountExists(ctx, client, owner, tokenMint)
		if err != nil {
			s.log.Warn().Err(err).Str("network", string(network)).Str("recipient", recipient).Msg("token account lookup failed")
			return failClosed()
		}
		result.TokenAccountExists = &exists
	}

	return result
}

// tokenAccountExists reports whether the associated token account of
// (owner, mint) is initialized. A mint that cannot be derived reads as false;
// RPC failures are returned.
func (s *service) tokenAccountExists(ctx context.Context, client RPCClient, owner solana.PublicKey, tokenMint string) (bool, error) {
	mint, err := validation.ParseAddress(tokenMint)
	if err != nil {
		return false, nil
	}

	ata, _, err := solana.FindAssociatedTokenAddress(owner, mint)
	if err != nil {
		return false, nil
	}

	info, err := client.GetAccountInfo(ctx, ata)
	if err != nil {
		if errors.Is(err, rpc.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("get token account %s: %w", ata, err)
	}
	return info != nil && info.Value != nil, nil
}
