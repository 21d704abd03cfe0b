package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/ack-hub/internal/domain"
	"github.com/spec-kit/ack-hub/internal/events"
	apperrors "github.com/spec-kit/ack-hub/pkg/util/errorutil"
)

func (f *fixture) submitAs(t *testing.T, email, typeID string) *domain.Submission {
	t.Helper()
	identity := f.identity(t, email)
	sub, err := f.submissions.Append(context.Background(), SubmissionInput{
		TypeID:        typeID,
		RequestNumber: "2025/1",
		EmployeeName:  identity.DisplayName,
		Acknowledged:  true,
		Submitter:     identity,
	})
	require.NoError(t, err)
	return sub
}

func names(subs []domain.Submission) []string {
	out := make([]string, 0, len(subs))
	for _, s := range subs {
		out = append(out, s.EmployeeName)
	}
	return out
}

func TestAppendValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		input SubmissionInput
		field string
	}{
		{name: "not acknowledged", input: SubmissionInput{TypeID: "safety", EmployeeName: "Nour Ali"}, field: domain.FieldAcknowledged},
		{name: "blank name", input: SubmissionInput{TypeID: "safety", EmployeeName: "  ", Acknowledged: true}, field: domain.FieldEmployeeName},
		{name: "unknown type", input: SubmissionInput{TypeID: "nope", EmployeeName: "Nour Ali", Acknowledged: true}, field: "type_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.submissions.Append(ctx, tt.input)
			require.Error(t, err)
			domainErr := apperrors.ToDomainError(err)
			assert.Equal(t, apperrors.CodeValidation, domainErr.Code)
			assert.Contains(t, domainErr.Details, tt.field)
		})
	}

	all, err := f.submissions.ListVisibleTo(ctx, f.admin(t), "")
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestAppendThenGetRoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	var published []events.Event
	f.dispatcher.Subscribe(events.EventSubmissionCreated, func(_ context.Context, e events.Event) error {
		published = append(published, e)
		return nil
	})

	sub := f.submitAs(t, "sara.ahmed@domain.com", "remote-work")
	assert.Equal(t, "Remote Area Working Acknowledgement", sub.TypeTitle)
	assert.Equal(t, "sara.ahmed@domain.com", sub.EmployeeEmail)
	assert.Equal(t, "YSOD Unit #4", sub.Unit)
	assert.Equal(t, "supervisorB@domain.com", sub.SupervisorEmail)
	assert.Equal(t, "3/4/2025", sub.SubmittedAtDate)
	assert.True(t, sub.Acknowledged)

	got, err := f.submissions.GetByID(ctx, f.admin(t), sub.ID)
	require.NoError(t, err)
	assert.Equal(t, *sub, *got)

	require.Len(t, published, 1)
	assert.Equal(t, sub.ID, published[0].SubjectID)
}

func TestTitleSnapshotSurvivesCatalogEdits(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := f.admin(t)

	custom, err := f.catalog.Create(ctx, admin, TypeInput{Title: "Original", ShortDescription: "d"})
	require.NoError(t, err)
	sub := f.submitAs(t, "nour.ali@domain.com", custom.ID)

	_, err = f.catalog.Update(ctx, admin, custom.ID, TypeInput{Title: "Renamed", ShortDescription: "d"})
	require.NoError(t, err)

	got, err := f.submissions.GetByID(ctx, admin, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, "Original", got.TypeTitle)
}

func TestListVisibleToIsStable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.submitAs(t, "ahmed.khaled@domain.com", "safety")
	f.submitAs(t, "nour.ali@domain.com", "training")
	f.submitAs(t, "sara.ahmed@domain.com", "security")

	for _, email := range []string{"amer.alsomali@domain.com", "supervisorA@domain.com", "nour.ali@domain.com"} {
		identity := f.identity(t, email)
		first, err := f.submissions.ListVisibleTo(ctx, identity, "")
		require.NoError(t, err)
		second, err := f.submissions.ListVisibleTo(ctx, identity, "")
		require.NoError(t, err)
		assert.Equal(t, first, second, email)
	}
}

func TestEmployeeSeesOnlyOwnSubmissions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ahmed := f.submitAs(t, "ahmed.khaled@domain.com", "safety")
	sara := f.submitAs(t, "sara.ahmed@domain.com", "safety")

	employee := f.identity(t, "ahmed.khaled@domain.com")
	visible, err := f.submissions.ListVisibleTo(ctx, employee, "")
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, ahmed.ID, visible[0].ID)

	_, err = f.submissions.GetByID(ctx, employee, sara.ID)
	assert.True(t, apperrors.HasCode(err, apperrors.CodePermissionDenied))

	_, err = f.submissions.GetByID(ctx, employee, "999")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
}

func TestSupervisorScopedToUnit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Ahmed and Nour share YSOD Unit #1 but have different supervisors.
	f.submitAs(t, "ahmed.khaled@domain.com", "safety")
	f.submitAs(t, "nour.ali@domain.com", "safety")
	f.submitAs(t, "reem.abdullah@domain.com", "safety")
	f.submitAs(t, "mohammed.hassan@domain.com", "safety")

	supervisor := f.identity(t, "supervisorA@domain.com")
	visible, err := f.submissions.ListVisibleTo(ctx, supervisor, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Ahmed Khaled", "Nour Ali"}, names(visible))
	for _, sub := range visible {
		assert.Equal(t, "YSOD Unit #1", sub.Unit)
	}
}

func TestSearchNarrowsCaseInsensitively(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for _, name := range []string{"Ahmed Khaled", "Sara Ahmed", "Omar Khalil"} {
		_, err := f.submissions.Append(ctx, SubmissionInput{TypeID: "safety", EmployeeName: name, Acknowledged: true})
		require.NoError(t, err)
	}

	admin := f.admin(t)
	tests := []struct {
		term string
		want []string
	}{
		{term: "ahmed", want: []string{"Ahmed Khaled", "Sara Ahmed"}},
		{term: "AHMED", want: []string{"Ahmed Khaled", "Sara Ahmed"}},
		{term: "khal", want: []string{"Ahmed Khaled", "Omar Khalil"}},
		{term: "  ", want: []string{"Ahmed Khaled", "Sara Ahmed", "Omar Khalil"}},
		{term: "zzz", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			got, err := f.submissions.ListVisibleTo(ctx, admin, tt.term)
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(got))
		})
	}
}

func TestCollidingRequestNumbersAccepted(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := f.submissions.Append(ctx, SubmissionInput{
			TypeID:        "transfer",
			RequestNumber: "2025/123456",
			EmployeeName:  "Khalid Omar",
			Acknowledged:  true,
		})
		require.NoError(t, err)
	}

	all, err := f.submissions.ListVisibleTo(ctx, f.admin(t), "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.NotEqual(t, all[0].ID, all[1].ID)
}

func TestStats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.submitAs(t, "ahmed.khaled@domain.com", "safety")
	f.submitAs(t, "mohammed.hassan@domain.com", "training")
	f.submitAs(t, "sara.ahmed@domain.com", "safety")

	adminStats, err := f.submissions.Stats(ctx, f.admin(t))
	require.NoError(t, err)
	assert.Equal(t, 3, adminStats.Total)
	assert.Equal(t, 2, adminStats.ByType["Safety Acknowledgment"])
	assert.Nil(t, adminStats.UnitsManaged)

	supStats, err := f.submissions.Stats(ctx, f.identity(t, "supervisorA@domain.com"))
	require.NoError(t, err)
	assert.Equal(t, 1, supStats.Total)
	assert.Equal(t, map[string]int{"YSOD Unit #1": 1}, supStats.ByUnit)
	require.NotNil(t, supStats.UnitsManaged)
	assert.Equal(t, 2, *supStats.UnitsManaged)
}
