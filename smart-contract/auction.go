/*
SPDX-License-Identifier: Apache-2.0
*/

package auction

import (
	"fmt"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
)

// This contract implements a Dutch auction: a single prize is offered at a
// price that decays from a starting price toward a floor until one buyer
// accepts the current price and the sale settles on the ledger.
type SmartContract struct {
	contractapi.Contract
	ledger TokenLedger
}

// NewSmartContract creates the contract backed by the channel's token chaincodes
func NewSmartContract() *SmartContract {
	return &SmartContract{ledger: chaincodeTokenLedger{}}
}

/**************** AUCTION ADMIN METHODS ****************/

// Initialize opens the auction. The submitting client becomes the admin and
// the transaction timestamp becomes the starting time; the parameters are
// immutable afterwards. Only one auction exists per contract instance, so a
// second call fails without touching the stored record.
func (s *SmartContract) Initialize(ctx contractapi.TransactionContextInterface, paymentToken string, prizeItem string, startingPrice uint64, minimumPrice uint64, slope uint64) error {

	// get ID of submitting client
	clientID, errClientID := s.GetSubmittingClientIdentity(ctx)
	if errClientID != nil {
		return fmt.Errorf("failed to get client identity: %v", errClientID)
	}

	exists, errExists := auctionExists(ctx)
	if errExists != nil {
		return fmt.Errorf("failed to check if the auction is already initialized: %v", errExists)
	}
	if exists {
		return fmt.Errorf("%w: only one auction per contract instance", ErrAlreadyInitialized)
	}

	if paymentToken == "" || prizeItem == "" {
		return fmt.Errorf("%w: payment token and prize item must be named", ErrInvalidParameters)
	}
	if slope == 0 {
		return fmt.Errorf("%w: slope must be positive", ErrInvalidParameters)
	}
	if minimumPrice > startingPrice {
		return fmt.Errorf("%w: minimum price %d exceeds starting price %d", ErrInvalidParameters, minimumPrice, startingPrice)
	}

	now, errNow := txTime(ctx)
	if errNow != nil {
		return errNow
	}

	// create the auction and save it
	auction := Auction{
		Admin:         clientID,
		PaymentToken:  paymentToken,
		PrizeItem:     prizeItem,
		StartingPrice: startingPrice,
		MinimumPrice:  minimumPrice,
		StartingTime:  now,
		Slope:         slope,
		Status:        Open,
		Result:        nil,
	}

	errPutAuction := putAuction(ctx, &auction)
	if errPutAuction != nil {
		return fmt.Errorf("could not save the new auction in the world state: %v", errPutAuction)
	}

	errEvent := setAuctionSummaryEvent(ctx, &auction)
	if errEvent != nil {
		return fmt.Errorf("could not set the auction opened event: %v", errEvent)
	}

	return nil
}

/**************** AUCTION BUYER METHODS ****************/

// GetPrice returns the auction price at the transaction timestamp
func (s *SmartContract) GetPrice(ctx contractapi.TransactionContextInterface) (uint64, error) {
	auction, errGetAuction := getAuction(ctx)
	if errGetAuction != nil {
		return 0, errGetAuction
	}

	now, errNow := txTime(ctx)
	if errNow != nil {
		return 0, errNow
	}

	return currentPrice(auction, now)
}

// Buy settles the auction: the submitting client pays the current price to
// the admin and receives the escrowed prize in exchange. Status is checked
// and rewritten within the same transaction, so a concurrent or re-entrant
// buy cannot settle twice.
func (s *SmartContract) Buy(ctx contractapi.TransactionContextInterface) error {

	// get ID of submitting client
	clientID, errClientID := s.GetSubmittingClientIdentity(ctx)
	if errClientID != nil {
		return fmt.Errorf("failed to get client identity: %v", errClientID)
	}

	auction, errGetAuction := getAuction(ctx)
	if errGetAuction != nil {
		return errGetAuction
	}
	if auction.Status != Open {
		return fmt.Errorf("%w: cannot buy again", ErrAlreadySettled)
	}

	now, errNow := txTime(ctx)
	if errNow != nil {
		return errNow
	}
	price, errPrice := currentPrice(auction, now)
	if errPrice != nil {
		return errPrice
	}

	// Payment leg before prize leg: the prize must not move unless the
	// payment completed. Any error below aborts the transaction, and
	// Fabric then discards all of its ledger writes.
	errPayment := s.ledger.Transfer(ctx, auction.PaymentToken, clientID, auction.Admin, price)
	if errPayment != nil {
		return fmt.Errorf("%w: payment of %d %s: %v", ErrTransferFailed, price, auction.PaymentToken, errPayment)
	}

	// The prize is the escrow account's entire balance of the prize item
	escrow := contractAccountID(ctx)
	prizeBalance, errBalance := s.ledger.BalanceOf(ctx, auction.PrizeItem, escrow)
	if errBalance != nil {
		return fmt.Errorf("%w: prize balance lookup: %v", ErrTransferFailed, errBalance)
	}
	errPrize := s.ledger.Transfer(ctx, auction.PrizeItem, escrow, clientID, prizeBalance)
	if errPrize != nil {
		return fmt.Errorf("%w: prize delivery of %d %s: %v", ErrTransferFailed, prizeBalance, auction.PrizeItem, errPrize)
	}

	receipt, errReceipt := settlementReceipt(auction, clientID, price, ctx.GetStub().GetTxID())
	if errReceipt != nil {
		return errReceipt
	}

	// Settle the auction
	auction.Status = Settled
	auction.Result = &AuctionResult{
		Buyer:       clientID,
		HammerPrice: price,
		Receipt:     receipt,
	}
	errPutAuction := putAuction(ctx, auction)
	if errPutAuction != nil {
		return fmt.Errorf("could not save the settled auction: %v", errPutAuction)
	}

	errEvent := setAuctionSummaryEvent(ctx, auction)
	if errEvent != nil {
		return fmt.Errorf("could not set the auction settled event: %v", errEvent)
	}

	return nil
}

// QueryAuction returns the full auction record from the world state
func (s *SmartContract) QueryAuction(ctx contractapi.TransactionContextInterface) (*Auction, error) {
	return getAuction(ctx)
}
