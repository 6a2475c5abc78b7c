package roles

import (
	"context"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/sync/errgroup"

	"github.com/smartcontractkit/timelock-roles/sdk"
	"github.com/smartcontractkit/timelock-roles/sdk/evm"
	"github.com/smartcontractkit/timelock-roles/types"
)

// RoleEvents holds the decoded event streams of one role.
type RoleEvents struct {
	Granted []types.RoleEvent
	Revoked []types.RoleEvent
}

// Fetcher retrieves the RoleGranted and RoleRevoked history of a timelock.
type Fetcher struct {
	timelock common.Address
	logs     sdk.LogFilterer
	decoder  *evm.RoleEventDecoder
}

// NewFetcher creates a Fetcher reading the logs of timelock from logs.
func NewFetcher(timelock common.Address, logs sdk.LogFilterer) *Fetcher {
	return &Fetcher{
		timelock: timelock,
		logs:     logs,
		decoder:  evm.NewRoleEventDecoder(timelock),
	}
}

// FetchRoleEvents returns every event of the given type emitted for role, in the order returned by the
// log source.
func (f *Fetcher) FetchRoleEvents(ctx context.Context, role types.Role, event types.EventType) ([]types.RoleEvent, error) {
	topic, err := evm.EventTopic(event)
	if err != nil {
		return nil, err
	}

	logs, err := f.logs.FilterLogs(ctx, f.timelock, topic, role.ID())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s events for %s role: %w", event, role, err)
	}

	events := make([]types.RoleEvent, 0, len(logs))
	for _, l := range logs {
		e, err := f.decoder.Decode(event, l)
		if err != nil {
			return nil, err
		}
		if e.Role != role.ID() {
			return nil, fmt.Errorf("%s log %s:%d carries role %s, queried %s",
				event, l.TxHash.Hex(), l.Index, e.Role.Hex(), role.ID().Hex())
		}
		events = append(events, e)
	}

	sdk.LoggerFrom(ctx).Debugf("fetched %d %s events for %s role", len(events), event, role)

	return events, nil
}

// FetchAll fetches the granted and revoked streams of every tracked role concurrently. The first
// failure cancels the remaining queries.
func (f *Fetcher) FetchAll(ctx context.Context) (map[types.Role]RoleEvents, error) {
	var (
		mu  sync.Mutex
		out = make(map[types.Role]RoleEvents, len(types.Roles))
	)

	g, gctx := errgroup.WithContext(ctx)
	for _, role := range types.Roles {
		for _, event := range types.EventTypes {
			g.Go(func() error {
				events, err := f.FetchRoleEvents(gctx, role, event)
				if err != nil {
					return err
				}

				mu.Lock()
				defer mu.Unlock()
				re := out[role]
				if event == types.EventRoleGranted {
					re.Granted = events
				} else {
					re.Revoked = events
				}
				out[role] = re

				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}
