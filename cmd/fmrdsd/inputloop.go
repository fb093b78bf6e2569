package main

import (
	"context"
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/mlang/fmrds/rds"
)

// pollTimeoutMillis is the input loop's readiness-wait timeout: on
// expiry with no data ready on either fd it logs "no RDS data" at
// verbosity and loops, matching the original program's 1-second poll
// timeout.
const pollTimeoutMillis = 1000

// runInputLoop multiplexes the tuner's RDS byte stream and the keyboard
// fd with unix.Poll, translating raw bytes into rds.Block and
// rds.Command values delivered over blocks/commands. It replaces the
// original program's poll()-based fork child: here it is one goroutine,
// cancelled via ctx.
func runInputLoop(ctx context.Context, tunerFD, keyboardFD int, blocks chan<- rds.Block, commands chan<- rds.Command, onTimeout func()) error {
	defer close(blocks)
	defer close(commands)

	fds := []unix.PollFd{
		{Fd: int32(tunerFD), Events: unix.POLLIN},
		{Fd: int32(keyboardFD), Events: unix.POLLIN},
	}

	tunerBuf := make([]byte, 3)
	keyBuf := make([]byte, 1)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		n, err := unix.Poll(fds, pollTimeoutMillis)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return fmt.Errorf("inputloop: poll: %w", err)
		}
		if n == 0 {
			if onTimeout != nil {
				onTimeout()
			}
			continue
		}

		if fds[0].Revents&unix.POLLIN != 0 {
			nr, err := unix.Read(tunerFD, tunerBuf)
			switch {
			case err != nil:
				return fmt.Errorf("inputloop: read tuner fd: %w", err)
			case nr == 0:
				return nil // EOF
			case nr < 3:
				continue // incomplete read: dropped without logging
			}
			select {
			case blocks <- rds.Block{LSB: tunerBuf[0], MSB: tunerBuf[1], Status: tunerBuf[2]}:
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		if fds[1].Revents&unix.POLLIN != 0 {
			nr, err := unix.Read(keyboardFD, keyBuf)
			switch {
			case err != nil:
				return fmt.Errorf("inputloop: read keyboard fd: %w", err)
			case nr == 0:
				return nil // EOF
			}
			select {
			case commands <- rds.Command(keyBuf[0]):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}
