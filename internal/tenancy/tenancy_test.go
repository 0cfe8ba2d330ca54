package tenancy_test

import (
	"context"
	"fmt"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/afroforma/roommaster/internal/tenancy"
)

func TestTenantIDAbsent(t *testing.T) {
	if id, ok := tenancy.TenantID(context.Background()); ok {
		t.Errorf("expected no tenant, got %q", id)
	}
}

func TestWithTenant(t *testing.T) {
	ctx := tenancy.WithTenant(context.Background(), "tenant-a")
	id, ok := tenancy.TenantID(ctx)
	if !ok || id != "tenant-a" {
		t.Errorf("got %q %v, want tenant-a true", id, ok)
	}
}

// Concurrent requests must never observe each other's tenant, even when
// their asynchronous steps interleave.
func TestConcurrentIsolation(t *testing.T) {
	const workers = 50

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			want := fmt.Sprintf("tenant-%d", i)
			ctx := tenancy.WithTenant(context.Background(), want)

			for j := 0; j < 20; j++ {
				time.Sleep(time.Microsecond)
				got, ok := tenancy.TenantID(ctx)
				if !ok || got != want {
					t.Errorf("worker %d observed %q, want %q", i, got, want)
					return
				}

				// Spawned continuations inherit the same binding.
				done := make(chan string, 1)
				go func() {
					id, _ := tenancy.TenantID(ctx)
					done <- id
				}()
				if got := <-done; got != want {
					t.Errorf("worker %d goroutine observed %q, want %q", i, got, want)
					return
				}
			}
		}(i)
	}
	wg.Wait()
}

func TestResolveHint(t *testing.T) {
	tests := []struct {
		name   string
		header map[string]string
		target string
		want   string
	}{
		{"absent", nil, "/rooms", ""},
		{"primary header", map[string]string{"X-Tenant-ID": "t1"}, "/rooms", "t1"},
		{"fallback header", map[string]string{"X-Tenant": "t2"}, "/rooms", "t2"},
		{"primary wins", map[string]string{"X-Tenant-ID": "t1", "X-Tenant": "t2"}, "/rooms", "t1"},
		{"query param", nil, "/rooms?tenant=t3", "t3"},
		{"header beats query", map[string]string{"X-Tenant-ID": "t1"}, "/rooms?tenant=t3", "t1"},
		{"whitespace trimmed", map[string]string{"X-Tenant-ID": "  t1  "}, "/rooms", "t1"},
		{"blank is absent", map[string]string{"X-Tenant-ID": "   "}, "/rooms", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.target, nil)
			for k, v := range tt.header {
				r.Header.Set(k, v)
			}
			if got := tenancy.ResolveHint(r); got != tt.want {
				t.Errorf("ResolveHint = %q, want %q", got, tt.want)
			}
		})
	}
}
