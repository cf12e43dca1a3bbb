package database

import (
	"context"
	"sync"
	"time"
)

// cancelCheck is how many attempts are made between checks of the context.
const cancelCheck = 1 << 16

// Work describes the result of a proof of work search.
type Work struct {
	Nonce    uint64
	Hash     string
	Attempts uint64
	Duration time.Duration
}

// PerformPOW does the work of mining to find a valid hash for the block at
// the specified difficulty. Pointer semantics are being used since a nonce
// is being discovered. The search starts right after the block's current
// nonce and always computes at least one hash, so a difficulty of 0 is
// solved by the first attempt.
//
// When workers is greater than 1 the nonce space is split into strided
// partitions, one per goroutine, and the first solution found wins. If
// the context is cancelled the block is left untouched and the context
// error is returned.
func (b *Block) PerformPOW(ctx context.Context, difficulty uint, workers int, ev func(v string, args ...any)) (Work, error) {
	if ev == nil {
		ev = func(string, ...any) {}
	}

	ev("database: PerformPOW: MINING: started: difficulty[%d] workers[%d] tx[%s]", difficulty, max(workers, 1), b.Tx)
	defer ev("database: PerformPOW: MINING: completed")

	start := time.Now()
	suffix := b.hashSuffix()

	var work Work
	var err error
	switch {
	case workers <= 1:
		work, err = searchSingle(ctx, difficulty, b.Header.Nonce+1, suffix, ev)
	default:
		work, err = searchParallel(ctx, difficulty, b.Header.Nonce+1, suffix, workers, ev)
	}
	if err != nil {
		ev("database: PerformPOW: MINING: CANCELLED: %s", err)
		return Work{}, err
	}

	work.Duration = time.Since(start)

	b.Header.Nonce = work.Nonce
	b.Hash = work.Hash

	ev("database: PerformPOW: MINING: SOLVED: prevBlk[%s]: newBlk[%s]", b.Header.PrevBlockHash, work.Hash)
	ev("database: PerformPOW: MINING: attempts[%d] duration[%v]", work.Attempts, work.Duration)

	return work, nil
}

// searchSingle scans the nonce space sequentially from start.
func searchSingle(ctx context.Context, difficulty uint, start uint64, suffix string, ev func(v string, args ...any)) (Work, error) {
	var attempts uint64
	for nonce := start; ; nonce++ {
		attempts++
		if attempts%cancelCheck == 0 {
			if err := ctx.Err(); err != nil {
				return Work{}, err
			}
		}
		if attempts%1_000_000 == 0 {
			ev("database: PerformPOW: MINING: attempts[%d]", attempts)
		}

		hash := hashWithNonce(nonce, suffix)
		if IsHashSolved(difficulty, hash) {
			return Work{Nonce: nonce, Hash: hash, Attempts: attempts}, nil
		}
	}
}

// searchParallel runs workers goroutines where goroutine i checks the
// nonces start+i, start+i+workers, start+i+2*workers and so on.
func searchParallel(ctx context.Context, difficulty uint, start uint64, suffix string, workers int, ev func(v string, args ...any)) (Work, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	found := make(chan Work, 1)
	attempts := make([]uint64, workers)

	var wg sync.WaitGroup
	wg.Add(workers)

	for i := range workers {
		go func() {
			defer wg.Done()

			stride := uint64(workers)
			for nonce := start + uint64(i); ; nonce += stride {
				attempts[i]++
				if attempts[i]%cancelCheck == 0 && ctx.Err() != nil {
					return
				}

				hash := hashWithNonce(nonce, suffix)
				if !IsHashSolved(difficulty, hash) {
					continue
				}

				select {
				case found <- Work{Nonce: nonce, Hash: hash}:
				default:
				}
				cancel()
				return
			}
		}()
	}

	// Can't return until every worker is done, the attempt counters
	// are written by them.
	wg.Wait()

	select {
	case work := <-found:
		for _, n := range attempts {
			work.Attempts += n
		}
		ev("database: PerformPOW: MINING: parallel solution: nonce[%d]", work.Nonce)
		return work, nil

	default:
		return Work{}, ctx.Err()
	}
}
