package services

import (
	"context"
	"testing"
	"time"

	"orgcalendar/internal/domain"
	"orgcalendar/internal/policy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func meetingFixtures() []*domain.Meeting {
	return []*domain.Meeting{
		{ID: testID(801), Title: "Committee", Date: day("2025-02-03"), StartTime: "18:00", EndTime: "19:00", Attendees: []string{memberBob.ID, secretary.ID}, Status: domain.MeetingScheduled, RecurringPattern: domain.RecurNone, CreatedBy: secretary.ID},
		{ID: testID(802), Title: "Finance", Date: day("2025-01-10"), StartTime: "10:00", EndTime: "11:00", Attendees: []string{convenor.ID, testID(999)}, Status: domain.MeetingCompleted, RecurringPattern: domain.RecurMonthly, IsRecurring: true, CreatedBy: convenor.ID},
		{ID: testID(803), Title: "Social", Date: day("2025-01-25"), StartTime: "19:00", EndTime: "21:00", Attendees: []string{}, Status: domain.MeetingScheduled, RecurringPattern: domain.RecurNone, CreatedBy: convenor.ID},
		{ID: testID(804), Title: "Cancelled AGM", Date: day("2025-01-30"), StartTime: "12:00", EndTime: "13:00", Attendees: []string{}, Status: domain.MeetingCancelled, RecurringPattern: domain.RecurNone, CreatedBy: convenor.ID},
	}
}

func newMeetingServiceForTest(meetings ...*domain.Meeting) (*meetingService, *fakeMeetingRepo, *fakeUserRepo, *fakeEmailService) {
	repo := newFakeMeetingRepo(meetings...)
	users := newFakeUserRepo(allFixtures...)
	mail := &fakeEmailService{}
	svc := NewMeetingService(repo, users, mail, nil, 5*time.Second).(*meetingService)
	svc.now = func() time.Time { return baseTime }
	return svc, repo, users, mail
}

func meetingTitles(ms []*domain.MeetingDetails) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.Title
	}
	return out
}

func TestMeetingService_UserAlwaysForbidden(t *testing.T) {
	svc, repo, _, _ := newMeetingServiceForTest(meetingFixtures()...)
	ctx := context.Background()
	alice := principal(userAlice)

	_, err := svc.List(ctx, alice, domain.MeetingListParams{})
	require.ErrorIs(t, err, domain.ErrForbidden)
	assert.EqualError(t, err, policy.ReasonMemberRole)

	_, err = svc.List(ctx, alice, domain.MeetingListParams{Status: "not-a-status"})
	require.ErrorIs(t, err, domain.ErrForbidden, "policy runs before validation")

	for _, m := range meetingFixtures() {
		_, err := svc.Get(ctx, alice, m.ID)
		require.ErrorIs(t, err, domain.ErrForbidden)
	}
	_, err = svc.Get(ctx, alice, testID(899))
	require.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, 0, repo.writes)
}

func TestMeetingService_List_MemberByStatus(t *testing.T) {
	svc, _, users, _ := newMeetingServiceForTest(meetingFixtures()...)

	got, err := svc.List(context.Background(), principal(memberBob), domain.MeetingListParams{Status: "scheduled"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Social", "Committee"}, meetingTitles(got))
	assert.Equal(t, 1, users.refCalls)

	committee := got[1]
	require.Len(t, committee.Attendees, 2)
	assert.Equal(t, &domain.UserRef{ID: memberBob.ID, Name: "Bob", Email: "bob@example.com", Role: domain.RoleMember}, committee.Attendees[0])
	assert.Equal(t, domain.RoleSecretary, committee.Attendees[1].Role)
	assert.Equal(t, "Sam", committee.CreatedBy.Name)
	assert.NotNil(t, got[0].Attendees, "empty attendees encode as a list")
	assert.Empty(t, got[0].Attendees)
}

func TestMeetingService_List_Filters(t *testing.T) {
	tests := []struct {
		name   string
		params domain.MeetingListParams
		want   []string
	}{
		{"all", domain.MeetingListParams{}, []string{"Finance", "Social", "Cancelled AGM", "Committee"}},
		{"range", domain.MeetingListParams{StartDate: "2025-01-25", EndDate: "2025-01-30"}, []string{"Social", "Cancelled AGM"}},
		{"start only", domain.MeetingListParams{StartDate: "2025-02-01"}, []string{"Committee"}},
		{"cancelled", domain.MeetingListParams{Status: "cancelled"}, []string{"Cancelled AGM"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _, _ := newMeetingServiceForTest(meetingFixtures()...)
			got, err := svc.List(context.Background(), principal(secretary), tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.want, meetingTitles(got))
		})
	}
}

func TestMeetingService_List_InvalidStatus(t *testing.T) {
	svc, _, _, _ := newMeetingServiceForTest(meetingFixtures()...)

	_, err := svc.List(context.Background(), principal(memberBob), domain.MeetingListParams{Status: "postponed"})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "status", ve.Fields[0].Field)
}

func TestMeetingService_Get_DropsMissingAttendees(t *testing.T) {
	svc, _, _, _ := newMeetingServiceForTest(meetingFixtures()...)

	got, err := svc.Get(context.Background(), principal(memberBob), testID(802))
	require.NoError(t, err)
	require.Len(t, got.Attendees, 1)
	assert.Equal(t, convenor.ID, got.Attendees[0].ID)
	assert.Equal(t, domain.RecurMonthly, got.RecurringPattern)

	_, err = svc.Get(context.Background(), principal(memberBob), testID(899))
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMeetingService_Create_Defaults(t *testing.T) {
	svc, repo, _, mail := newMeetingServiceForTest()

	got, err := svc.Create(context.Background(), principal(convenor), domain.MeetingInput{
		Title:     ptr("Planning"),
		Date:      ptr("2025-05-05"),
		StartTime: ptr("17:00"),
		EndTime:   ptr("18:00"),
	})
	require.NoError(t, err)

	stored := repo.stored(got.ID)
	require.NotNil(t, stored)
	assert.Equal(t, domain.MeetingScheduled, stored.Status)
	assert.Equal(t, domain.RecurNone, stored.RecurringPattern)
	assert.False(t, stored.IsRecurring)
	assert.Equal(t, []string{}, stored.Attendees)
	assert.Equal(t, convenor.ID, stored.CreatedBy)
	assert.Empty(t, mail.invitations)
}

func TestMeetingService_Create_AttendeesAndInvitations(t *testing.T) {
	svc, repo, _, mail := newMeetingServiceForTest()
	sameBob := "00000000-0000-4000-8000-000000000002"

	got, err := svc.Create(context.Background(), principal(secretary), domain.MeetingInput{
		Title:     ptr("Board"),
		Date:      ptr("2025-05-05"),
		StartTime: ptr("17:00"),
		EndTime:   ptr("18:00"),
		Location:  ptr("Hall"),
		Attendees: &[]string{convenor.ID, sameBob, convenor.ID, testID(999)},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{convenor.ID, memberBob.ID, testID(999)}, repo.stored(got.ID).Attendees)
	require.Len(t, got.Attendees, 2)
	assert.Equal(t, "Cora", got.Attendees[0].Name)
	assert.Equal(t, "Bob", got.Attendees[1].Name)

	require.Len(t, mail.invitations, 2)
	inv := mail.invitations[0]
	assert.Equal(t, "cora@example.com", inv.Email)
	assert.Equal(t, "Board", inv.Title)
	assert.Equal(t, "2025-05-05", inv.Date)
	assert.Equal(t, "Hall", inv.Location)
	assert.Equal(t, "Sam", inv.Organizer)
}

func TestMeetingService_Create_MailFailureIsIgnored(t *testing.T) {
	svc, repo, _, mail := newMeetingServiceForTest()
	mail.err = errStore

	got, err := svc.Create(context.Background(), principal(secretary), domain.MeetingInput{
		Title: ptr("Board"), Date: ptr("2025-05-05"), StartTime: ptr("17:00"), EndTime: ptr("18:00"),
		Attendees: &[]string{memberBob.ID},
	})
	require.NoError(t, err)
	assert.NotNil(t, repo.stored(got.ID))
	assert.Len(t, mail.invitations, 1)
}

func TestMeetingService_Create_Validation(t *testing.T) {
	svc, repo, _, _ := newMeetingServiceForTest()

	_, err := svc.Create(context.Background(), principal(secretary), domain.MeetingInput{
		Date:             ptr("not a date"),
		Status:           ptr("postponed"),
		RecurringPattern: ptr("yearly"),
		Attendees:        &[]string{"bob"},
	})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	fields := make([]string, len(ve.Fields))
	for i, f := range ve.Fields {
		fields[i] = f.Field
	}
	assert.Equal(t, []string{"title", "date", "startTime", "endTime", "status", "recurringPattern", "attendees"}, fields)
	assert.Equal(t, 0, repo.writes)
}

func TestMeetingService_WriteForbidden(t *testing.T) {
	for _, u := range []*domain.User{userAlice, memberBob} {
		t.Run(string(u.Role), func(t *testing.T) {
			svc, repo, _, mail := newMeetingServiceForTest(meetingFixtures()...)
			ctx := context.Background()
			in := domain.MeetingInput{Title: ptr("x"), Date: ptr("2025-05-05"), StartTime: ptr("1"), EndTime: ptr("2")}

			_, err := svc.Create(ctx, principal(u), in)
			require.ErrorIs(t, err, domain.ErrForbidden)
			_, err = svc.Update(ctx, principal(u), testID(801), in)
			require.ErrorIs(t, err, domain.ErrForbidden)
			err = svc.Delete(ctx, principal(u), testID(801))
			require.ErrorIs(t, err, domain.ErrForbidden)

			assert.Equal(t, 0, repo.writes)
			assert.Equal(t, "Committee", repo.stored(testID(801)).Title)
			assert.Empty(t, mail.invitations)
		})
	}
}

func TestMeetingService_Update_Partial(t *testing.T) {
	svc, repo, _, mail := newMeetingServiceForTest(meetingFixtures()...)
	id := testID(801)

	got, err := svc.Update(context.Background(), principal(convenor), id, domain.MeetingInput{
		Status:    ptr("ongoing"),
		Attendees: &[]string{userAlice.ID},
	})
	require.NoError(t, err)

	stored := repo.stored(id)
	assert.Equal(t, domain.MeetingOngoing, stored.Status)
	assert.Equal(t, "Committee", stored.Title)
	assert.Equal(t, "18:00", stored.StartTime)
	assert.Equal(t, secretary.ID, stored.CreatedBy)
	assert.Equal(t, convenor.ID, stored.LastModifiedBy)

	require.Len(t, got.Attendees, 1)
	assert.Equal(t, "Alice", got.Attendees[0].Name)
	assert.Equal(t, "Cora", got.LastModifiedBy.Name)
	assert.Empty(t, mail.invitations, "updates do not send invitations")
}

func TestMeetingService_Update_ClearAttendees(t *testing.T) {
	svc, repo, _, _ := newMeetingServiceForTest(meetingFixtures()...)
	id := testID(801)

	got, err := svc.Update(context.Background(), principal(secretary), id, domain.MeetingInput{Attendees: &[]string{}})
	require.NoError(t, err)
	assert.Empty(t, repo.stored(id).Attendees)
	assert.Empty(t, got.Attendees)
}

func TestMeetingService_Update_NotFoundAndValidation(t *testing.T) {
	svc, repo, _, _ := newMeetingServiceForTest(meetingFixtures()...)

	_, err := svc.Update(context.Background(), principal(secretary), testID(899), domain.MeetingInput{Title: ptr("x")})
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.Update(context.Background(), principal(secretary), testID(801), domain.MeetingInput{Title: ptr(" ")})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Meeting title cannot be empty", ve.Fields[0].Message)
	assert.Equal(t, 0, repo.writes)
}

func TestMeetingService_Delete_Twice(t *testing.T) {
	svc, _, _, _ := newMeetingServiceForTest(meetingFixtures()...)
	ctx := context.Background()

	require.NoError(t, svc.Delete(ctx, principal(secretary), testID(803)))
	require.ErrorIs(t, svc.Delete(ctx, principal(secretary), testID(803)), domain.ErrNotFound)
	require.ErrorIs(t, svc.Delete(ctx, principal(convenor), testID(899)), domain.ErrNotFound)
}

func TestNormalizeAttendees(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
		ok   bool
	}{
		{"empty", []string{}, []string{}, true},
		{"dedupe keeps order", []string{testID(2), testID(1), testID(2)}, []string{testID(2), testID(1)}, true},
		{"case folded", []string{"ABCDEF00-0000-4000-8000-000000000001", "abcdef00-0000-4000-8000-000000000001"}, []string{"abcdef00-0000-4000-8000-000000000001"}, true},
		{"invalid", []string{testID(1), "nope"}, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := normalizeAttendees(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
