// Command crabstress exercises a crablist.List from many goroutines at
// once: every worker performs one random operation over a small key range
// after a shared barrier, and the tool verifies the survivors at quiescence.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/metailurini/crablist"
)

type operation int

const (
	opInsertHead operation = iota
	opInsertTail
	opDelete
	opSearch
)

func (op operation) String() string {
	switch op {
	case opInsertHead:
		return "insert head"
	case opInsertTail:
		return "insert tail"
	case opDelete:
		return "delete"
	default:
		return "search"
	}
}

func main() {
	var (
		workers = flag.Int("workers", 1000, "number of worker goroutines")
		keys    = flag.Int("keys", 100, "operations draw keys from [1, keys]")
		opRate  = flag.Int("rate", 0, "cap on operations per second, 0 for unlimited")
		seed    = flag.Int64("seed", 0, "random seed, 0 derives one from the clock")
		quiet   = flag.Bool("quiet", false, "suppress per-operation log lines")
	)
	flag.Parse()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	log.SetFlags(log.Lmicroseconds)
	log.Printf("seed=%d workers=%d keys=%d", *seed, *workers, *keys)

	limiter := rate.NewLimiter(rate.Inf, 1)
	if *opRate > 0 {
		limiter = rate.NewLimiter(rate.Limit(*opRate), *opRate)
	}

	l := crablist.New[int, rune](func(a, b int) bool { return a < b })

	start := make(chan struct{})
	var wg sync.WaitGroup
	for w := 0; w < *workers; w++ {
		wg.Add(1)
		r := rand.New(rand.NewSource(*seed + int64(w)))
		op := operation(r.Intn(4))
		key := 1 + r.Intn(*keys)
		value := rune('a' + r.Intn(26))

		go func(w int, op operation, key int, value rune) {
			defer wg.Done()
			<-start
			if err := limiter.Wait(context.Background()); err != nil {
				log.Printf("worker %d: %v", w, err)
				return
			}

			var ok bool
			switch op {
			case opInsertHead:
				ok = l.InsertHead(key, value)
			case opInsertTail:
				ok = l.InsertTail(key, value)
			case opDelete:
				_, ok = l.Delete(key)
			case opSearch:
				var found rune
				if found, ok = l.Get(key); ok {
					value = found
				}
			}
			if !*quiet {
				log.Printf("worker %d: %s key=%d value=%c -> %t", w, op, key, value, ok)
			}
		}(w, op, key, value)
	}

	began := time.Now()
	close(start)
	wg.Wait()
	elapsed := time.Since(began)

	survivors := 0
	for k := 1; k <= *keys; k++ {
		if v, ok := l.Get(k); ok {
			survivors++
			if !*quiet {
				fmt.Printf("%d=%c ", k, v)
			}
		}
	}
	if !*quiet && survivors > 0 {
		fmt.Println()
	}

	if got := l.Len(); got != int64(survivors) {
		log.Fatalf("length %d disagrees with %d surviving keys", got, survivors)
	}

	stats := l.Stats()
	log.Printf("done in %v: %d survivors, %d inserts, %d deletes, %d lock transfers",
		elapsed, survivors, stats.Inserts, stats.Deletes, stats.Steps)
}
