/*
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"log"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
	auction "github.com/nandlab/fabric-dutch-auction/smart-contract"
)

func main() {
	auctionChaincode, err := contractapi.NewChaincode(auction.NewSmartContract())
	if err != nil {
		log.Panicf("Error creating dutch auction chaincode: %v", err)
	}

	if err := auctionChaincode.Start(); err != nil {
		log.Panicf("Error starting dutch auction chaincode: %v", err)
	}
}
