package explorer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/spf13/cast"

	"github.com/smartcontractkit/timelock-roles/sdk"
	sdkerrors "github.com/smartcontractkit/timelock-roles/sdk/errors"
)

var _ sdk.LogFilterer = (*Client)(nil)

const (
	statusOK         = "1"
	noRecordsMessage = "No records found"
)

// ResultKind tells apart the three shapes of a getLogs answer.
type ResultKind int

const (
	ResultOK ResultKind = iota
	ResultEmpty
	ResultError
)

func (k ResultKind) String() string {
	switch k {
	case ResultOK:
		return "ok"
	case ResultEmpty:
		return "empty"
	case ResultError:
		return "error"
	default:
		return "unknown(" + strconv.Itoa(int(k)) + ")"
	}
}

// LogsResult is a normalized getLogs answer. Logs is set for ResultOK and Err for ResultError.
type LogsResult struct {
	Kind ResultKind
	Logs []types.Log
	Err  *sdkerrors.APIError
}

// LogQuery selects logs of one contract. Topics are matched positionally and combined with "and".
type LogQuery struct {
	Address   common.Address
	Topics    []common.Hash
	FromBlock string
	ToBlock   string
	Page      int
	Offset    int
}

func (q LogQuery) params() url.Values {
	params := url.Values{}
	params.Set("module", "logs")
	params.Set("action", "getLogs")
	params.Set("address", q.Address.Hex())

	from, to := q.FromBlock, q.ToBlock
	if from == "" {
		from = "0"
	}
	if to == "" {
		to = "latest"
	}
	params.Set("fromBlock", from)
	params.Set("toBlock", to)

	for i, topic := range q.Topics {
		params.Set(fmt.Sprintf("topic%d", i), topic.Hex())
		for j := range i {
			params.Set(fmt.Sprintf("topic%d_%d_opr", j, i), "and")
		}
	}

	if q.Page > 0 {
		params.Set("page", strconv.Itoa(q.Page))
	}
	if q.Offset > 0 {
		params.Set("offset", strconv.Itoa(q.Offset))
	}

	return params
}

type response struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
}

type rawLog struct {
	Address          string   `json:"address"`
	Topics           []string `json:"topics"`
	Data             string   `json:"data"`
	BlockNumber      string   `json:"blockNumber"`
	BlockHash        string   `json:"blockHash"`
	TransactionHash  string   `json:"transactionHash"`
	TransactionIndex string   `json:"transactionIndex"`
	LogIndex         string   `json:"logIndex"`
}

// GetLogs requests a single page of logs.
func (c *Client) GetLogs(ctx context.Context, q LogQuery) (LogsResult, error) {
	var resp response
	requestURL, err := c.get(ctx, q.params(), &resp)
	if err != nil {
		return LogsResult{}, err
	}

	return normalizeLogs(resp, requestURL)
}

// FilterLogs returns every log of address matching topics from block 0 to the latest block, fetching
// pages until a short or empty page is returned.
func (c *Client) FilterLogs(ctx context.Context, address common.Address, topics ...common.Hash) ([]types.Log, error) {
	var logs []types.Log
	for page := 1; ; page++ {
		res, err := c.GetLogs(ctx, LogQuery{
			Address: address,
			Topics:  topics,
			Page:    page,
			Offset:  c.pageSize,
		})
		if err != nil {
			return nil, err
		}

		switch res.Kind {
		case ResultEmpty:
			return logs, nil
		case ResultError:
			return nil, res.Err
		case ResultOK:
		}

		logs = append(logs, res.Logs...)
		if len(res.Logs) < c.pageSize {
			return logs, nil
		}
	}
}

// normalizeLogs maps the explorer envelope onto a LogsResult. The explorer reports an empty result set
// as a failed status with a "No records found" message, so the message is checked first.
func normalizeLogs(resp response, requestURL string) (LogsResult, error) {
	if resp.Message == noRecordsMessage {
		return LogsResult{Kind: ResultEmpty}, nil
	}

	if resp.Status != statusOK {
		return LogsResult{
			Kind: ResultError,
			Err:  sdkerrors.NewAPIError(resp.Status, resp.Message, resultText(resp.Result), requestURL),
		}, nil
	}

	var raws []rawLog
	if err := json.Unmarshal(resp.Result, &raws); err != nil {
		return LogsResult{}, fmt.Errorf("unexpected getLogs result from %s: %w", requestURL, err)
	}

	logs := make([]types.Log, 0, len(raws))
	for i, r := range raws {
		l, err := r.toLog()
		if err != nil {
			return LogsResult{}, fmt.Errorf("invalid log record %d from %s: %w", i, requestURL, err)
		}
		logs = append(logs, l)
	}

	return LogsResult{Kind: ResultOK, Logs: logs}, nil
}

// resultText renders the result field of an error envelope, which is usually a plain string.
func resultText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	return strings.TrimSpace(string(raw))
}

func (r rawLog) toLog() (types.Log, error) {
	if !common.IsHexAddress(r.Address) {
		return types.Log{}, fmt.Errorf("invalid address %q", r.Address)
	}

	blockNumber, err := parseQuantity(r.BlockNumber)
	if err != nil {
		return types.Log{}, fmt.Errorf("invalid blockNumber: %w", err)
	}
	txIndex, err := parseQuantity(r.TransactionIndex)
	if err != nil {
		return types.Log{}, fmt.Errorf("invalid transactionIndex: %w", err)
	}
	logIndex, err := parseQuantity(r.LogIndex)
	if err != nil {
		return types.Log{}, fmt.Errorf("invalid logIndex: %w", err)
	}

	topics := make([]common.Hash, 0, len(r.Topics))
	for _, t := range r.Topics {
		b, err := hexutil.Decode(t)
		if err != nil || len(b) != common.HashLength {
			return types.Log{}, fmt.Errorf("invalid topic %q", t)
		}
		topics = append(topics, common.BytesToHash(b))
	}

	data := []byte{}
	if r.Data != "" {
		data, err = hexutil.Decode(r.Data)
		if err != nil {
			return types.Log{}, fmt.Errorf("invalid data: %w", err)
		}
	}

	return types.Log{
		Address:     common.HexToAddress(r.Address),
		Topics:      topics,
		Data:        data,
		BlockNumber: blockNumber,
		BlockHash:   common.HexToHash(r.BlockHash),
		TxHash:      common.HexToHash(r.TransactionHash),
		TxIndex:     uint(txIndex),
		Index:       uint(logIndex),
	}, nil
}

// parseQuantity parses the explorer's numeric strings. Hex quantities are "0x"-prefixed and zero may be
// rendered as a bare "0x".
func parseQuantity(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "0x" || s == "0X" {
		return 0, nil
	}

	return cast.ToUint64E(s)
}
