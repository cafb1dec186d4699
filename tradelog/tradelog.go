// Package tradelog persists the trade stream of a simulation run as a
// zstd-compressed CBOR sequence: one header followed by one record per
// trade, in clearing order. A chained digest over the records lets two logs
// be compared without decoding them side by side.
package tradelog

import (
	"errors"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"

	"github.com/airmarket-io/airmarket/core"
	"github.com/airmarket-io/airmarket/sim"
)

// FormatVersion identifies the log layout. Bump on incompatible changes.
const FormatVersion = 1

// header opens every log stream.
type header struct {
	Version int    `cbor:"version"`
	RunID   string `cbor:"run_id"`
	Seed    int64  `cbor:"seed"`
}

// Record is the serialized form of one cleared trade. From is
// core.NoOwner for primary-market sales.
type Record[R comparable] struct {
	TransactionTime uint64  `cbor:"tx_time"`
	From            uint64  `cbor:"from"`
	To              uint64  `cbor:"to"`
	Location        R       `cbor:"location"`
	Time            uint64  `cbor:"time"`
	Value           float64 `cbor:"value"`
}

// Recorder writes a trade log. It is driven from the simulation's trade
// callback and therefore needs no locking.
type Recorder[R comparable] struct {
	zw     *zstd.Encoder
	enc    *cbor.Encoder
	digest string
	count  int
	err    error
}

// NewRecorder starts a log on w identified by runID. Pass the engine seed
// so a log names everything needed to reproduce its run.
func NewRecorder[R comparable](w io.Writer, runID uuid.UUID, seed int64) (*Recorder[R], error) {
	zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("tradelog: starting compressor: %w", err)
	}

	r := &Recorder[R]{zw: zw, enc: cbor.NewEncoder(zw)}
	if err := r.enc.Encode(header{Version: FormatVersion, RunID: runID.String(), Seed: seed}); err != nil {
		zw.Close()
		return nil, fmt.Errorf("tradelog: writing header: %w", err)
	}
	return r, nil
}

// Callback adapts the recorder to the simulation's trade callback. Encoding
// failures are sticky and surface from Close.
func (r *Recorder[R]) Callback() sim.TradeCallback[R] {
	return func(info sim.TradeInfo[R]) {
		if r.err != nil {
			return
		}
		rec := Record[R]{
			TransactionTime: info.TransactionTime,
			From:            uint64(info.From),
			To:              uint64(info.To),
			Location:        info.Location,
			Time:            info.Time,
			Value:           info.Value,
		}
		if err := r.enc.Encode(rec); err != nil {
			r.err = fmt.Errorf("tradelog: writing record %d: %w", r.count, err)
			return
		}
		r.digest = chainTradeHash(r.digest, rec)
		r.count++
	}
}

// Count is the number of records written so far.
func (r *Recorder[R]) Count() int { return r.count }

// Digest is the chained hash over all records written so far.
func (r *Recorder[R]) Digest() string { return r.digest }

// Close flushes the compressed stream and reports the first error
// encountered while recording.
func (r *Recorder[R]) Close() error {
	closeErr := r.zw.Close()
	if r.err != nil {
		return r.err
	}
	return closeErr
}

// Log is a fully decoded trade log.
type Log[R comparable] struct {
	RunID  uuid.UUID
	Seed   int64
	Trades []Record[R]
	Digest string
}

// Replay decodes a log stream produced by a Recorder, recomputing the
// record digest so callers can compare runs by digest alone.
func Replay[R comparable](rd io.Reader) (*Log[R], error) {
	zr, err := zstd.NewReader(rd)
	if err != nil {
		return nil, fmt.Errorf("tradelog: starting decompressor: %w", err)
	}
	defer zr.Close()

	dec := cbor.NewDecoder(zr)

	var h header
	if err := dec.Decode(&h); err != nil {
		return nil, fmt.Errorf("tradelog: reading header: %w", err)
	}
	if h.Version != FormatVersion {
		return nil, fmt.Errorf("tradelog: unsupported format version %d", h.Version)
	}
	runID, err := uuid.Parse(h.RunID)
	if err != nil {
		return nil, fmt.Errorf("tradelog: invalid run id: %w", err)
	}

	log := &Log[R]{RunID: runID, Seed: h.Seed}
	for {
		var rec Record[R]
		if err := dec.Decode(&rec); err != nil {
			if errors.Is(err, io.EOF) {
				return log, nil
			}
			return nil, fmt.Errorf("tradelog: reading record %d: %w", len(log.Trades), err)
		}
		log.Trades = append(log.Trades, rec)
		log.Digest = chainTradeHash(log.Digest, rec)
	}
}

// PrimarySale reports whether the record describes a primary-market trade.
func (r Record[R]) PrimarySale() bool { return core.AgentID(r.From) == core.NoOwner }
