/*
SPDX-License-Identifier: Apache-2.0
*/

package auction

import (
	"fmt"
	"strconv"

	"github.com/hyperledger/fabric-chaincode-go/shim"
	"github.com/hyperledger/fabric-contract-api-go/contractapi"
)

// TokenLedger moves fungible tokens between accounts. The production
// implementation talks to the token chaincodes deployed on the channel;
// tests substitute an in-memory ledger.
type TokenLedger interface {
	// Transfer moves amount units of the named token from one account to
	// another. The token chaincode owns the authorization rules, e.g. a
	// spending allowance granted to the auction beforehand.
	Transfer(ctx contractapi.TransactionContextInterface, token string, from string, to string, amount uint64) error

	// BalanceOf returns the account's balance of the named token.
	BalanceOf(ctx contractapi.TransactionContextInterface, token string, account string) (uint64, error)
}

// contractAccountID is the ledger account that escrows the prize until
// settlement. The seller deposits the prize to this account on the prize
// token chaincode before buyers show up.
func contractAccountID(ctx contractapi.TransactionContextInterface) string {
	return fmt.Sprintf("dutch-auction@%s", ctx.GetStub().GetChannelID())
}

// chaincodeTokenLedger implements TokenLedger by invoking ERC-20 style
// token chaincodes on the same channel. Amounts travel as decimal strings.
type chaincodeTokenLedger struct{}

func (chaincodeTokenLedger) Transfer(ctx contractapi.TransactionContextInterface, token string, from string, to string, amount uint64) error {
	args := [][]byte{
		[]byte("TransferFrom"),
		[]byte(from),
		[]byte(to),
		[]byte(strconv.FormatUint(amount, 10)),
	}
	response := ctx.GetStub().InvokeChaincode(token, args, ctx.GetStub().GetChannelID())
	if response.Status != shim.OK {
		return fmt.Errorf("token chaincode %s rejected the transfer: %s", token, response.Message)
	}
	return nil
}

func (chaincodeTokenLedger) BalanceOf(ctx contractapi.TransactionContextInterface, token string, account string) (uint64, error) {
	args := [][]byte{[]byte("BalanceOf"), []byte(account)}
	response := ctx.GetStub().InvokeChaincode(token, args, ctx.GetStub().GetChannelID())
	if response.Status != shim.OK {
		return 0, fmt.Errorf("token chaincode %s rejected the balance query: %s", token, response.Message)
	}
	balance, err := strconv.ParseUint(string(response.Payload), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("token chaincode %s returned a malformed balance %q: %v", token, response.Payload, err)
	}
	return balance, nil
}
