package transfer

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"subsqueeze/internal/entity"
	"subsqueeze/internal/repository/jsonfile"
)

func newRepos(t *testing.T) (*jsonfile.SubRepository, *jsonfile.EventRepository) {
	t.Helper()
	store, err := jsonfile.NewStore(t.TempDir())
	require.NoError(t, err)
	return jsonfile.NewSubRepository(store), jsonfile.NewEventRepository(store)
}

func Test_csv_RoundTrip(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	source := []*entity.Subscription{
		{
			Name:        "Netflix",
			Amount:      17.99,
			Currency:    "CAD",
			Cadence:     entity.CadenceMonthly,
			NextRenewal: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
			Category:    entity.CategoryStreaming,
			Status:      entity.StatusActive,
			Notes:       "has \"quotes\", and commas",
		},
		{
			Name:        "Laundry",
			Amount:      8,
			Currency:    "CAD",
			Cadence:     entity.CadenceCustom,
			CustomDays:  10,
			NextRenewal: time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC),
			Category:    entity.CategoryUtilities,
			Status:      entity.StatusPaused,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, source))

	subs, events := newRepos(t)
	res, err := NewImporter(subs, events).Import(ctx, &buf, now)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Imported)
	assert.Zero(t, res.Skipped)
	assert.Empty(t, res.Errors)

	got, err := subs.ListSubs(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)

	byName := map[string]*entity.Subscription{}
	for _, s := range got {
		byName[s.Name] = s
	}
	netflix := byName["Netflix"]
	require.NotNil(t, netflix)
	assert.Equal(t, 17.99, netflix.Amount)
	assert.Equal(t, entity.CadenceMonthly, netflix.Cadence)
	assert.Equal(t, entity.StatusActive, netflix.Status)
	assert.Equal(t, "has \"quotes\", and commas", netflix.Notes)

	laundry := byName["Laundry"]
	require.NotNil(t, laundry)
	assert.Equal(t, entity.CadenceCustom, laundry.Cadence)
	assert.Equal(t, 10, laundry.CustomDays)
	assert.Equal(t, entity.StatusPaused, laundry.Status)

	all, err := events.ListEvents(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	for _, e := range all {
		assert.Equal(t, entity.EventCreated, e.Type)
	}
}

func Test_csv_ImportDefaultsAndSkips(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("bad values fall back, rows without names are skipped", func(t *testing.T) {
		subs, events := newRepos(t)

		input := strings.Join([]string{
			"Name,Amount,Currency,Cadence,Custom Days,Next Renewal,Category,Status,Reminder Enabled,Reminder Days,Notes,Cancel URL,Created At,Updated At",
			"Mystery,not-a-number,cad,fortnightly,,junk-date,junk,junk,true,x,,,,",
			",5,CAD,monthly,,2025-04-01,other,active,false,0,,,,",
		}, "\n")

		res, err := NewImporter(subs, events).Import(ctx, strings.NewReader(input), now)
		require.NoError(t, err)
		assert.Equal(t, 1, res.Imported)
		assert.Equal(t, 1, res.Skipped)
		require.Len(t, res.Errors, 1)
		assert.Contains(t, res.Errors[0], "missing name")

		got, err := subs.ListSubs(ctx)
		require.NoError(t, err)
		require.Len(t, got, 1)
		s := got[0]
		assert.Equal(t, "Mystery", s.Name)
		assert.Zero(t, s.Amount)
		assert.Equal(t, "CAD", s.Currency)
		assert.Equal(t, entity.CadenceMonthly, s.Cadence)
		assert.Equal(t, entity.CategoryOther, s.Category)
		assert.Equal(t, entity.StatusActive, s.Status)
		assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), s.NextRenewal)
		assert.Zero(t, s.ReminderDays)
	})

	t.Run("duplicate names against the store are skipped", func(t *testing.T) {
		subs, events := newRepos(t)
		_, err := subs.SaveSub(ctx, &entity.Subscription{
			Name:        "Netflix",
			Amount:      17.99,
			Currency:    "CAD",
			Cadence:     entity.CadenceMonthly,
			NextRenewal: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
			Status:      entity.StatusActive,
		})
		require.NoError(t, err)

		input := strings.Join([]string{
			"Name,Amount,Currency,Cadence,Custom Days,Next Renewal,Category,Status,Reminder Enabled,Reminder Days,Notes,Cancel URL,Created At,Updated At",
			"NETFLIX,20,CAD,monthly,,2025-04-01,streaming,active,false,0,,,,",
			"Spotify,11,CAD,monthly,,2025-04-05,streaming,active,false,0,,,,",
			"spotify,11,CAD,monthly,,2025-04-05,streaming,active,false,0,,,,",
		}, "\n")

		res, err := NewImporter(subs, events).Import(ctx, strings.NewReader(input), now)
		require.NoError(t, err)
		assert.Equal(t, 1, res.Imported)
		assert.Equal(t, 2, res.Skipped)
		require.Len(t, res.Errors, 2)
		assert.Contains(t, res.Errors[0], "duplicate name")

		got, err := subs.ListSubs(ctx)
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("headers match case-insensitively", func(t *testing.T) {
		subs, events := newRepos(t)

		input := strings.Join([]string{
			"name,amount,currency,cadence,next renewal,status",
			"Disney+,12,CAD,monthly,2025-04-02,trial",
		}, "\n")

		res, err := NewImporter(subs, events).Import(ctx, strings.NewReader(input), now)
		require.NoError(t, err)
		assert.Equal(t, 1, res.Imported)

		got, err := subs.ListSubs(ctx)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, entity.StatusTrial, got[0].Status)
	})
}
