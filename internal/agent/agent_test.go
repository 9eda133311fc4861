package agent

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/nexusai/nexus-crm/internal/domain"
	"github.com/nexusai/nexus-crm/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noDelay() time.Duration { return 0 }

func TestAsk_AnswersAfterDelay(t *testing.T) {
	a := New(WithDelay(noDelay))

	reply, err := a.Ask(context.Background(), "tickets abertos", domain.RoleOperator,
		testutil.SampleSnapshot(), ChatContext{Now: testutil.SampleNow})

	require.NoError(t, err)
	assert.Equal(t, "tickets", reply.Intent)
}

func TestAsk_ShortMessage(t *testing.T) {
	a := New(WithDelay(noDelay))

	reply, err := a.Ask(context.Background(), "ok", domain.RoleOwner, testutil.SampleSnapshot(), ChatContext{})

	require.NoError(t, err)
	assert.Equal(t, IntentClarification, reply.Intent)
}

func TestAsk_CancelledDuringDelay(t *testing.T) {
	a := New(WithDelay(func() time.Duration { return time.Hour }))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := a.Ask(ctx, "mrr", domain.RoleOwner, testutil.SampleSnapshot(), ChatContext{})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestAsk_ConcurrentTurnsDoNotBlockEachOther(t *testing.T) {
	a := New(WithDelayRange(20*time.Millisecond, 40*time.Millisecond))
	snap := testutil.SampleSnapshot()
	messages := []string{"mrr", "tickets abertos", "como está meu projeto?", "oi", "xyz qwerty"}
	roles := []domain.Role{domain.RoleOwner, domain.RoleOperator, domain.RoleClient, domain.RoleOwner, domain.RoleOperator}

	start := time.Now()
	var wg sync.WaitGroup
	replies := make([]Reply, 50)
	for i := range replies {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r, err := a.Ask(context.Background(), messages[i%len(messages)], roles[i%len(roles)], snap,
				ChatContext{ClientID: "c2", Now: testutil.SampleNow})
			assert.NoError(t, err)
			replies[i] = r
		}(i)
	}
	wg.Wait()

	// Fifty serialized turns would take at least a second.
	assert.Less(t, time.Since(start), time.Second)
	for i, r := range replies {
		assert.NotEmpty(t, r.Text, "turn %d", i)
	}
}

func TestUniformDelay_Bounds(t *testing.T) {
	d := uniformDelay(DefaultMinDelay, DefaultMaxDelay)
	for range 200 {
		v := d()
		assert.GreaterOrEqual(t, v, DefaultMinDelay)
		assert.LessOrEqual(t, v, DefaultMaxDelay)
	}
	assert.Equal(t, time.Second, uniformDelay(time.Second, time.Millisecond)())
}

func TestGreet(t *testing.T) {
	a := New(WithPicker(func(n int) int { return n - 1 }))

	assert.Equal(t, "Good morning! Ready to analyze your business. What would you like to know?", a.Greet(domain.RoleOwner))
	assert.Equal(t, "Hey! How can I assist you today?", a.Greet(domain.RoleClient))
	assert.Equal(t, "Hey! What do we need to solve today?", a.Greet(domain.Role("unknown")))
}

func TestGreet_RandomStaysInTable(t *testing.T) {
	a := New()
	greetings := a.Matcher().Playbook(domain.RoleOperator).Greetings
	for range 20 {
		assert.Contains(t, greetings, a.Greet(domain.RoleOperator))
	}
}
