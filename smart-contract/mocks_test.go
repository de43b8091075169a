package auction

import (
	"crypto/x509"
	"encoding/base64"
	"fmt"

	"github.com/golang/protobuf/ptypes/timestamp"
	"github.com/hyperledger/fabric-chaincode-go/shim"
	"github.com/hyperledger/fabric-contract-api-go/contractapi"
	pb "github.com/hyperledger/fabric-protos-go/peer"
)

// chaincodeStub stands in for the peer during tests. World state lives in a
// map, the transaction timestamp is settable, and cross-chaincode calls can
// be scripted via the invoke hook. Everything the contract does not touch
// returns zero values.
type chaincodeStub struct {
	state   map[string][]byte
	events  map[string][]byte
	txTime  int64
	txID    string
	channel string
	invoke  func(chaincodeName string, args [][]byte, channel string) pb.Response
}

func newChaincodeStub() *chaincodeStub {
	return &chaincodeStub{
		state:   map[string][]byte{},
		events:  map[string][]byte{},
		txID:    "tx1",
		channel: "testchannel",
	}
}

func (s *chaincodeStub) GetState(key string) ([]byte, error) { return s.state[key], nil }

func (s *chaincodeStub) PutState(key string, value []byte) error {
	s.state[key] = value
	return nil
}

func (s *chaincodeStub) DelState(key string) error {
	delete(s.state, key)
	return nil
}

func (s *chaincodeStub) GetTxTimestamp() (*timestamp.Timestamp, error) {
	return &timestamp.Timestamp{Seconds: s.txTime}, nil
}

func (s *chaincodeStub) GetTxID() string      { return s.txID }
func (s *chaincodeStub) GetChannelID() string { return s.channel }

func (s *chaincodeStub) SetEvent(name string, payload []byte) error {
	s.events[name] = payload
	return nil
}

func (s *chaincodeStub) InvokeChaincode(chaincodeName string, args [][]byte, channel string) pb.Response {
	if s.invoke == nil {
		return pb.Response{Status: shim.ERROR, Message: "cross-chaincode invocation not scripted"}
	}
	return s.invoke(chaincodeName, args, channel)
}

// Unused parts of the stub interface.

func (s *chaincodeStub) GetArgs() [][]byte                            { return nil }
func (s *chaincodeStub) GetStringArgs() []string                      { return nil }
func (s *chaincodeStub) GetFunctionAndParameters() (string, []string) { return "", nil }
func (s *chaincodeStub) GetArgsSlice() ([]byte, error)                { return nil, nil }
func (s *chaincodeStub) SetStateValidationParameter(string, []byte) error {
	return nil
}
func (s *chaincodeStub) GetStateValidationParameter(string) ([]byte, error) {
	return nil, nil
}
func (s *chaincodeStub) GetStateByRange(string, string) (shim.StateQueryIteratorInterface, error) {
	return nil, nil
}
func (s *chaincodeStub) GetStateByRangeWithPagination(string, string, int32, string) (shim.StateQueryIteratorInterface, *pb.QueryResponseMetadata, error) {
	return nil, nil, nil
}
func (s *chaincodeStub) GetStateByPartialCompositeKey(string, []string) (shim.StateQueryIteratorInterface, error) {
	return nil, nil
}
func (s *chaincodeStub) GetStateByPartialCompositeKeyWithPagination(string, []string, int32, string) (shim.StateQueryIteratorInterface, *pb.QueryResponseMetadata, error) {
	return nil, nil, nil
}
func (s *chaincodeStub) CreateCompositeKey(string, []string) (string, error) {
	return "", nil
}
func (s *chaincodeStub) SplitCompositeKey(string) (string, []string, error) {
	return "", nil, nil
}
func (s *chaincodeStub) GetQueryResult(string) (shim.StateQueryIteratorInterface, error) {
	return nil, nil
}
func (s *chaincodeStub) GetQueryResultWithPagination(string, int32, string) (shim.StateQueryIteratorInterface, *pb.QueryResponseMetadata, error) {
	return nil, nil, nil
}
func (s *chaincodeStub) GetHistoryForKey(string) (shim.HistoryQueryIteratorInterface, error) {
	return nil, nil
}
func (s *chaincodeStub) GetPrivateData(string, string) ([]byte, error)     { return nil, nil }
func (s *chaincodeStub) GetPrivateDataHash(string, string) ([]byte, error) { return nil, nil }
func (s *chaincodeStub) PutPrivateData(string, string, []byte) error       { return nil }
func (s *chaincodeStub) DelPrivateData(string, string) error               { return nil }
func (s *chaincodeStub) PurgePrivateData(string, string) error             { return nil }
func (s *chaincodeStub) SetPrivateDataValidationParameter(string, string, []byte) error {
	return nil
}
func (s *chaincodeStub) GetPrivateDataValidationParameter(string, string) ([]byte, error) {
	return nil, nil
}
func (s *chaincodeStub) GetPrivateDataByRange(string, string, string) (shim.StateQueryIteratorInterface, error) {
	return nil, nil
}
func (s *chaincodeStub) GetPrivateDataByPartialCompositeKey(string, string, []string) (shim.StateQueryIteratorInterface, error) {
	return nil, nil
}
func (s *chaincodeStub) GetPrivateDataQueryResult(string, string) (shim.StateQueryIteratorInterface, error) {
	return nil, nil
}
func (s *chaincodeStub) GetCreator() ([]byte, error)              { return nil, nil }
func (s *chaincodeStub) GetTransient() (map[string][]byte, error) { return nil, nil }
func (s *chaincodeStub) GetBinding() ([]byte, error)              { return nil, nil }
func (s *chaincodeStub) GetDecorations() map[string][]byte        { return nil }
func (s *chaincodeStub) GetSignedProposal() (*pb.SignedProposal, error) {
	return nil, nil
}

// clientIdentity serves a fixed client ID in the base64 form the peer uses.
type clientIdentity struct {
	id string
}

func (c *clientIdentity) GetID() (string, error) {
	return base64.StdEncoding.EncodeToString([]byte(c.id)), nil
}
func (c *clientIdentity) GetMSPID() (string, error)                      { return "Org1MSP", nil }
func (c *clientIdentity) GetX509Certificate() (*x509.Certificate, error) { return nil, nil }
func (c *clientIdentity) GetAttributeValue(string) (string, bool, error) { return "", false, nil }
func (c *clientIdentity) AssertAttributeValue(string, string) error      { return nil }

// memoryLedger keeps per-token account balances in memory and can be told
// to reject transfers of a given token.
type memoryLedger struct {
	balances map[string]map[string]uint64
	rejected map[string]bool
}

func newMemoryLedger() *memoryLedger {
	return &memoryLedger{
		balances: map[string]map[string]uint64{},
		rejected: map[string]bool{},
	}
}

func (l *memoryLedger) mint(token string, account string, amount uint64) {
	if l.balances[token] == nil {
		l.balances[token] = map[string]uint64{}
	}
	l.balances[token][account] += amount
}

func (l *memoryLedger) Transfer(_ contractapi.TransactionContextInterface, token string, from string, to string, amount uint64) error {
	if l.rejected[token] {
		return fmt.Errorf("transfers of %s are rejected", token)
	}
	accounts := l.balances[token]
	if accounts[from] < amount {
		return fmt.Errorf("insufficient %s balance: have %d, need %d", token, accounts[from], amount)
	}
	accounts[from] -= amount
	accounts[to] += amount
	return nil
}

func (l *memoryLedger) BalanceOf(_ contractapi.TransactionContextInterface, token string, account string) (uint64, error) {
	return l.balances[token][account], nil
}

// transactionContext builds a real contractapi context around the fake stub
// for the given client. Contexts made from the same stub share world state.
func transactionContext(stub *chaincodeStub, clientID string) *contractapi.TransactionContext {
	ctx := &contractapi.TransactionContext{}
	ctx.SetStub(stub)
	ctx.SetClientIdentity(&clientIdentity{id: clientID})
	return ctx
}
