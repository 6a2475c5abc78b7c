package explorer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/url"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	sdkerrors "github.com/smartcontractkit/timelock-roles/sdk/errors"
)

// The explorer proxy module forwards read-only JSON-RPC calls, which is enough to back contract bindings.
var _ bind.ContractCaller = (*Client)(nil)

var errContractCreation = errors.New("calls without a target contract are not supported")

type rpcErrorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// proxyResponse covers both the JSON-RPC envelope and the explorer's own status envelope, which the
// proxy module uses for key and rate-limit failures.
type proxyResponse struct {
	Result  json.RawMessage `json:"result"`
	Error   *rpcErrorBody   `json:"error"`
	Status  string          `json:"status"`
	Message string          `json:"message"`
}

// CodeAt returns the code of the given account.
func (c *Client) CodeAt(ctx context.Context, contract common.Address, blockNumber *big.Int) ([]byte, error) {
	params := url.Values{}
	params.Set("module", "proxy")
	params.Set("action", "eth_getCode")
	params.Set("address", contract.Hex())
	params.Set("tag", blockTag(blockNumber))

	return c.proxy(ctx, params)
}

// CallContract executes a read-only message call.
func (c *Client) CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	if call.To == nil {
		return nil, errContractCreation
	}

	params := url.Values{}
	params.Set("module", "proxy")
	params.Set("action", "eth_call")
	params.Set("to", call.To.Hex())
	params.Set("data", hexutil.Encode(call.Data))
	params.Set("tag", blockTag(blockNumber))

	return c.proxy(ctx, params)
}

func (c *Client) proxy(ctx context.Context, params url.Values) ([]byte, error) {
	var resp proxyResponse
	requestURL, err := c.get(ctx, params, &resp)
	if err != nil {
		return nil, err
	}

	if resp.Error != nil {
		return nil, sdkerrors.NewRPCError(resp.Error.Code, resp.Error.Message)
	}

	if resp.Status != "" && resp.Status != statusOK {
		return nil, sdkerrors.NewAPIError(resp.Status, resp.Message, resultText(resp.Result), requestURL)
	}

	var out string
	if err := json.Unmarshal(resp.Result, &out); err != nil {
		return nil, fmt.Errorf("unexpected %s result from %s: %w", params.Get("action"), requestURL, err)
	}

	return hexutil.Decode(out)
}

func blockTag(blockNumber *big.Int) string {
	if blockNumber == nil {
		return "latest"
	}

	return hexutil.EncodeBig(blockNumber)
}
