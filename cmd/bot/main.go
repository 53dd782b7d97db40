// Command bot connects headless players that wander the field at random.
// Useful for smoke-testing a running server.
package main

import (
	"context"
	"flag"
	"log"
	"math/rand/v2"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"coinrush/client"
	"coinrush/game"
	"coinrush/protocol"
)

func main() {
	var (
		url      string
		count    int
		interval time.Duration
		binary   bool
	)
	flag.StringVar(&url, "url", "ws://localhost:3000/ws", "websocket endpoint")
	flag.IntVar(&count, "n", 1, "number of bots")
	flag.DurationVar(&interval, "every", 100*time.Millisecond, "delay between moves")
	flag.BoolVar(&binary, "msgpack", false, "use msgpack frames")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	codec := protocol.JSON
	if binary {
		codec = protocol.Msgpack
	}

	var wg sync.WaitGroup
	for i := 0; i < count; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			if err := run(ctx, n, url, codec, interval); err != nil {
				log.Printf("bot %d: %v", n, err)
			}
		}(i)
	}
	wg.Wait()
}

func run(ctx context.Context, n int, url string, codec protocol.Codec, interval time.Duration) error {
	c, err := client.Dial(ctx, url, codec, nil)
	if err != nil {
		return err
	}
	defer c.Close()
	if err := c.WaitReady(ctx); err != nil {
		return err
	}

	dirs := []game.Direction{game.Up, game.Down, game.Left, game.Right}
	dir := dirs[rand.IntN(len(dirs))]
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	report := time.NewTicker(5 * time.Second)
	defer report.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-c.Done():
			log.Printf("bot %d: disconnected", n)
			return nil
		case <-report.C:
			self, _ := c.Mirror().Self()
			log.Printf("bot %d (%s): score %d, %s", n, self.ID, self.Score, c.Mirror().RankLabel())
		case <-ticker.C:
			if rand.IntN(8) == 0 {
				dir = dirs[rand.IntN(len(dirs))]
			}
			if err := c.Move(dir, game.DefaultMoveSpeed); err != nil {
				return err
			}
		}
	}
}
