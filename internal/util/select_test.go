package util

import (
	"context"
	"fmt"
	"testing"
	"time"
)

var (
	err1 = fmt.Errorf("this is an error")
)

func TestSel(t *testing.T) {
	// check normal operation
	f1 := func() error {
		return err1
	}
	if err := Sel(context.Background(), f1); err != err1 {
		t.Errorf("expected %v, got %v", err1, err)
	}

	// check context canceled
	block := make(chan struct{})
	defer close(block)
	f2 := func() error {
		<-block
		return nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := Sel(ctx, f2); err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}

	// check deadline exceeded
	ctx, cancel = context.WithTimeout(context.Background(), time.Second/10)
	defer cancel()
	if err := Sel(ctx, f2); err != context.DeadlineExceeded {
		t.Errorf("expected context.DeadlineExceeded, got %v", err)
	}
}
