package domain

import (
	interfaces "chainvote/internal/domain/interfaces"
	types "chainvote/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	Choice      = types.Choice
	VoteMessage = types.VoteMessage
	Tally       = types.Tally
	Receipt     = types.Receipt
	WalletKey   = types.WalletKey
	Connection  = types.Connection
)

const (
	ChoiceYes = types.ChoiceYes
	ChoiceNo  = types.ChoiceNo
)

// Function aliases for the helpers that live next to the types.
var (
	ChoiceFromBool = types.ChoiceFromBool
	ParseChoice    = types.ParseChoice
	ZeroTally      = types.ZeroTally
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	KeyStore       = interfaces.KeyStore
	ReceiptStore   = interfaces.ReceiptStore
	WalletProvider = interfaces.WalletProvider
	Signer         = interfaces.Signer
	ChainClient    = interfaces.ChainClient
	Ballot         = interfaces.Ballot
	WalletService  = interfaces.WalletService
	VotingService  = interfaces.VotingService
)
