// Package public maintains the group of handlers for public access.
package public

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/ardanlabs/ledger/business/sys/validate"
	"github.com/ardanlabs/ledger/business/web/errs"
	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/state"
	"github.com/ardanlabs/ledger/foundation/events"
	"github.com/ardanlabs/ledger/foundation/web"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Handlers manages the set of ledger endpoints.
type Handlers struct {
	Log   *zap.SugaredLogger
	State *state.State
	WS    websocket.Upgrader
	Evts  *events.Events
}

// Events handles a web socket to provide mining and validation events to
// a client.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	h.WS.CheckOrigin = func(r *http.Request) bool { return true }

	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	ch := h.Evts.Acquire(v.TraceID)
	defer h.Evts.Release(v.TraceID)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case msg, open := <-ch:
			if !open {
				return nil
			}

			if err := c.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return err
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}
		}
	}
}

// SubmitTx constructs a transaction from the request, mines it into a new
// block and appends the block to the chain.
func (h Handlers) SubmitTx(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var ntx newTx
	if err := web.Decode(r, &ntx); err != nil {
		if validate.IsFieldErrors(err) {
			return err
		}
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	tx := database.NewTx(*ntx.Amount, ntx.From, ntx.To)

	h.Log.Infow("submit tx", "traceid", v.TraceID, "tx", tx.ID(), "from", tx.From(), "to", tx.To(), "amount", tx.Amount())

	blk, err := h.State.AppendTx(ctx, tx)
	if err != nil {
		return fmt.Errorf("append tx[%s]: %w", tx.ID(), err)
	}

	return web.Respond(ctx, w, toBlock(blk), http.StatusCreated)
}

// Blocks returns all the blocks in the chain or the block at the index.
func (h Handlers) Blocks(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	if idx := web.Param(r, "index"); idx != "" {
		index, err := strconv.Atoi(idx)
		if err != nil {
			return errs.NewTrustedf(http.StatusBadRequest, "invalid block index %q", idx)
		}

		blk, err := h.State.QueryBlock(index)
		if err != nil {
			if errors.Is(err, state.ErrBlockNotFound) {
				return errs.NewTrusted(err, http.StatusNotFound)
			}
			return err
		}

		return web.Respond(ctx, w, toBlock(blk), http.StatusOK)
	}

	dbBlocks := h.State.Blocks()

	blocks := make([]block, len(dbBlocks))
	for i, blk := range dbBlocks {
		blocks[i] = toBlock(blk)
	}

	return web.Respond(ctx, w, blocks, http.StatusOK)
}

// Validate audits the chain and reports the first problem found.
func (h Handlers) Validate(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	resp := validation{
		Valid:  true,
		Length: h.State.Length(),
	}

	if err := h.State.Validate(); err != nil {
		ve := state.GetValidationError(err)
		if ve == nil {
			return err
		}

		resp.Valid = false
		resp.Index = ve.Index
		resp.Check = string(ve.Check)
		resp.Reason = ve.Error()
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}
