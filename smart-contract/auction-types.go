/*
SPDX-License-Identifier: Apache-2.0
*/

package auction

import "errors"

// enum possible status: open, settled
type AuctionStatus int

const (
	Open    AuctionStatus = iota // Price decays over time, a buyer can settle at the current price
	Settled                      // Payment collected, prize delivered
)

// Auction data
// The record is written once by Initialize; Buy only flips the status and
// fills in the result. An absent record means the auction was never
// initialized, so a settled auction without parameters cannot exist.
type Auction struct {
	Admin         string         `json:"admin"`         // The auction creator and sole recipient of the payment
	PaymentToken  string         `json:"paymentToken"`  // Name of the token chaincode the buyer pays with
	PrizeItem     string         `json:"prizeItem"`     // Name of the token chaincode holding the prize; the escrow account's full balance is the prize
	StartingPrice uint64         `json:"startingPrice"` // Price at zero elapsed time
	MinimumPrice  uint64         `json:"minimumPrice"`  // Price floor, MinimumPrice <= StartingPrice
	StartingTime  int64          `json:"startingTime"`  // Transaction timestamp captured at initialization
	Slope         uint64         `json:"slope"`         // Seconds per unit of price drop, must be positive
	Status        AuctionStatus  `json:"status"`
	Result        *AuctionResult `json:"result"` // Set when the auction settles
}

// AuctionResult records the settlement
type AuctionResult struct {
	Buyer       string `json:"buyer"`
	HammerPrice uint64 `json:"hammerPrice"`
	Receipt     string `json:"receipt"` // Hex encoded SHAKE256 settlement digest, see settlementReceipt
}

// Auction status information, which will be presented to the users in an event
type AuctionSummary struct {
	Admin         string         `json:"admin"`
	PrizeItem     string         `json:"prizeItem"`
	Status        AuctionStatus  `json:"status"`
	StartingPrice uint64         `json:"startingPrice"`
	MinimumPrice  uint64         `json:"minimumPrice"`
	Result        *AuctionResult `json:"result"`
}

// Failure conditions reported by the contract. They are wrapped with %w
// context where raised, so callers match them with errors.Is.
var (
	ErrAlreadyInitialized = errors.New("auction is already initialized")
	ErrNotInitialized     = errors.New("auction is not initialized")
	ErrInvalidParameters  = errors.New("invalid auction parameters")
	ErrAlreadySettled     = errors.New("auction has already been settled")
	ErrTransferFailed     = errors.New("token transfer failed")
	ErrClockRegression    = errors.New("transaction time precedes the auction start")
)
