package auction

import (
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
	"golang.org/x/crypto/sha3"
)

// One auction per chaincode instance, stored under a fixed world state key.
const auctionKey = "auction"

// auctionExists checks if the auction was already initialized
func auctionExists(ctx contractapi.TransactionContextInterface) (bool, error) {
	auctionBin, err := ctx.GetStub().GetState(auctionKey)
	if err != nil {
		return false, err
	}
	exists := auctionBin != nil
	return exists, nil
}

// getAuction retrieves the auction from the world state
func getAuction(ctx contractapi.TransactionContextInterface) (*Auction, error) {
	auctionBin, errGetState := ctx.GetStub().GetState(auctionKey)
	if errGetState != nil {
		return nil, errGetState
	}
	if auctionBin == nil {
		return nil, ErrNotInitialized
	}
	var auction Auction
	err := json.Unmarshal(auctionBin, &auction)
	if err != nil {
		return nil, err
	}
	return &auction, nil
}

// putAuction saves the auction in the contract world state
// Fabric commits all writes of a transaction or none, so the record is
// persisted atomically.
func putAuction(ctx contractapi.TransactionContextInterface, auction *Auction) error {
	auctionBin, err := json.Marshal(auction)
	if err != nil {
		return err
	}
	return ctx.GetStub().PutState(auctionKey, auctionBin)
}

// setAuctionSummaryEvent sets an event about the current auction status which can be received by contract users
func setAuctionSummaryEvent(ctx contractapi.TransactionContextInterface, auction *Auction) error {
	summary := AuctionSummary{
		Admin:         auction.Admin,
		PrizeItem:     auction.PrizeItem,
		Status:        auction.Status,
		StartingPrice: auction.StartingPrice,
		MinimumPrice:  auction.MinimumPrice,
		Result:        auction.Result,
	}
	summaryBin, err := json.Marshal(&summary)
	if err != nil {
		return err
	}
	return ctx.GetStub().SetEvent(auctionKey, summaryBin)
}

// currentPrice computes the auction price at the given transaction time.
// The price starts at StartingPrice and drops by one unit every Slope
// seconds until it reaches MinimumPrice, where it stays indefinitely.
// Integer division truncates, so the price moves in discrete steps.
func currentPrice(auction *Auction, now int64) (uint64, error) {
	if now < auction.StartingTime {
		return 0, fmt.Errorf("%w: transaction time %d, auction started at %d", ErrClockRegression, now, auction.StartingTime)
	}
	decay := uint64(now-auction.StartingTime) / auction.Slope
	if decay >= auction.StartingPrice {
		// The whole starting price has decayed away, clamp before the
		// subtraction can wrap around.
		return auction.MinimumPrice, nil
	}
	price := auction.StartingPrice - decay
	if price < auction.MinimumPrice {
		return auction.MinimumPrice, nil
	}
	return price, nil
}

// settlementReceipt hashes the settlement
// It binds the buyer, the hammer price, the auction start and the settling
// transaction into a 64 byte SHAKE256 digest.
func settlementReceipt(auction *Auction, buyer string, price uint64, txID string) (string, error) {
	shake := sha3.NewShake256()
	priceBytes := [8]byte{}
	binary.BigEndian.PutUint64(priceBytes[:], price)
	timeBytes := [8]byte{}
	binary.BigEndian.PutUint64(timeBytes[:], uint64(auction.StartingTime))
	for _, data := range [][]byte{[]byte(buyer), priceBytes[:], timeBytes[:], []byte(txID)} {
		_, errShakeWrite := shake.Write(data)
		if errShakeWrite != nil {
			return "", fmt.Errorf("failed to write data to SHAKE: %v", errShakeWrite)
		}
	}
	hash := make([]byte, 64)
	_, errShakeRead := shake.Read(hash)
	if errShakeRead != nil {
		return "", fmt.Errorf("failed to read data from SHAKE: %v", errShakeRead)
	}
	return hex.EncodeToString(hash), nil
}
