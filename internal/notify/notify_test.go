package notify

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"partscout/internal/domain"
)

func TestCollector_ConcurrentPublish(t *testing.T) {
	var c Collector
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Publish(Notice{Level: LevelWarn, Vendor: domain.VendorMSY, Message: "timeout"})
		}()
	}
	wg.Wait()

	ns := c.Notices()
	require.Len(t, ns, 8)
	for _, n := range ns {
		assert.Equal(t, domain.VendorMSY, n.Vendor)
		assert.False(t, n.At.IsZero())
	}
	assert.Len(t, c.Messages(), 8)
}

func TestCollector_NoticesIsACopy(t *testing.T) {
	var c Collector
	c.Publish(Notice{Message: "one"})
	ns := c.Notices()
	ns[0].Message = "changed"
	assert.Equal(t, []string{"one"}, c.Messages())
}

func TestFromContext(t *testing.T) {
	require.NotNil(t, FromContext(context.Background()))
	FromContext(context.Background()).Publish(Notice{Message: "dropped"})

	var c Collector
	ctx := WithPublisher(context.Background(), &c)
	FromContext(ctx).Publish(Notice{Message: "scoped"})
	assert.Equal(t, []string{"scoped"}, c.Messages())
}

func TestFunc(t *testing.T) {
	var got []Notice
	var p Publisher = Func(func(n Notice) { got = append(got, n) })
	p.Publish(Notice{Message: "hi"})
	require.Len(t, got, 1)
	assert.Equal(t, "hi", got[0].Message)
	Discard.Publish(Notice{Message: "ignored"})
}
