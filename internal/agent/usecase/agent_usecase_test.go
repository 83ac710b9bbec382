package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	calendardomain "tabsy-backend/internal/calendar/domain"
	chatdomain "tabsy-backend/internal/chat/domain"
	chatrepo "tabsy-backend/internal/chat/repository"
	chatusecase "tabsy-backend/internal/chat/usecase"
	emaildomain "tabsy-backend/internal/email/domain"
	emailusecase "tabsy-backend/internal/email/usecase"
	taskdomain "tabsy-backend/internal/task/domain"
	taskrepo "tabsy-backend/internal/task/repository"
	taskusecase "tabsy-backend/internal/task/usecase"
)

type fakeAI struct {
	reply   string
	err     error
	prompts []string
}

func (f *fakeAI) Generate(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

type fakeCalendarUsecase struct {
	events []*calendardomain.CalendarEvent
	err    error
}

func (f *fakeCalendarUsecase) GetEvents(ctx context.Context, userID string, forceRefresh bool) ([]*calendardomain.CalendarEvent, error) {
	return f.events, f.err
}

func (f *fakeCalendarUsecase) RefreshCache(ctx context.Context, userID string) ([]*calendardomain.CalendarEvent, error) {
	return f.events, f.err
}

func (f *fakeCalendarUsecase) GetEventsByDateRange(ctx context.Context, userID string, start, end time.Time) ([]*calendardomain.CalendarEvent, error) {
	return f.events, f.err
}

func (f *fakeCalendarUsecase) FindFreeSlots(ctx context.Context, userID string, date time.Time, durationMinutes int) ([]*calendardomain.FreeSlot, error) {
	return nil, f.err
}

func (f *fakeCalendarUsecase) CreateEvent(ctx context.Context, userID string, input calendardomain.EventInput) (*calendardomain.CalendarEvent, error) {
	return nil, f.err
}

func (f *fakeCalendarUsecase) UpdateEvent(ctx context.Context, userID, eventID string, upd calendardomain.EventUpdate) (*calendardomain.CalendarEvent, error) {
	return nil, f.err
}

type fakeEmailUsecase struct {
	emails []*emaildomain.Email
	err    error
}

func (f *fakeEmailUsecase) GetEmails(ctx context.Context, userID string, opts emailusecase.ListOptions) ([]*emaildomain.Email, error) {
	return f.emails, f.err
}

func (f *fakeEmailUsecase) GetEmailByID(ctx context.Context, userID, emailID string) (*emaildomain.Email, error) {
	return nil, f.err
}

func (f *fakeEmailUsecase) RefreshCache(ctx context.Context, userID string) ([]*emaildomain.Email, error) {
	return f.emails, f.err
}

func (f *fakeEmailUsecase) MarkAsRead(ctx context.Context, userID, emailID string) error {
	return f.err
}

func (f *fakeEmailUsecase) SearchEmails(ctx context.Context, userID, query string) ([]*emaildomain.Email, error) {
	return f.emails, f.err
}

func (f *fakeEmailUsecase) DraftReply(ctx context.Context, userID, emailID, replyContext string, tone emailusecase.ReplyTone) (*emaildomain.ReplyDraft, error) {
	return nil, f.err
}

func (f *fakeEmailUsecase) SummarizeInbox(ctx context.Context, userID string, includeRead bool) (*emaildomain.InboxSummary, error) {
	return nil, f.err
}

type fakeTaskUsecase struct {
	result *taskusecase.PrioritizeResult
	err    error
}

func (f *fakeTaskUsecase) GetTasks(ctx context.Context, userID string, filters taskrepo.Filters) ([]*taskdomain.Task, error) {
	return nil, f.err
}

func (f *fakeTaskUsecase) CreateTask(ctx context.Context, userID string, input taskusecase.CreateTaskInput) (*taskdomain.Task, error) {
	return nil, f.err
}

func (f *fakeTaskUsecase) UpdateTask(ctx context.Context, userID, taskID string, input taskusecase.UpdateTaskInput) (*taskdomain.Task, error) {
	return nil, f.err
}

func (f *fakeTaskUsecase) DeleteTask(ctx context.Context, userID, taskID string) error {
	return f.err
}

func (f *fakeTaskUsecase) Prioritize(ctx context.Context, userID string) (*taskusecase.PrioritizeResult, error) {
	if f.result == nil {
		return &taskusecase.PrioritizeResult{Summary: "No active tasks found."}, f.err
	}
	return f.result, f.err
}

type agentFixture struct {
	uc   AgentUsecase
	ai   *fakeAI
	chat chatusecase.ChatUsecase
	db   *gorm.DB
}

func newAgentFixture(t *testing.T) *agentFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to open test database")
	require.NoError(t, db.AutoMigrate(&chatdomain.ChatConversation{}, &chatdomain.ChatMessage{}))

	ai := &fakeAI{reply: "assistant answer"}
	chatUc := chatusecase.NewChatUsecase(chatrepo.NewChatRepository(db))

	start := time.Now().Add(2 * time.Hour)
	calendar := &fakeCalendarUsecase{events: []*calendardomain.CalendarEvent{
		{Title: "Standup", StartTime: start, EndTime: start.Add(30 * time.Minute)},
	}}
	email := &fakeEmailUsecase{emails: []*emaildomain.Email{
		{GmailMessageID: "m1", Subject: "URGENT: invoice", Sender: "billing@example.com", Priority: emaildomain.PriorityHigh},
	}}
	due := time.Now().Add(3 * time.Hour)
	tasks := &fakeTaskUsecase{result: &taskusecase.PrioritizeResult{
		Tasks: []*taskdomain.ScoredTask{
			{
				Task:           &taskdomain.Task{Title: "File taxes", Priority: taskdomain.PriorityHigh, DueDate: &due},
				UrgencyScore:   58,
				Recommendation: "Can wait until afternoon",
			},
		},
		Summary: "You have 1 active task(s). 0 require immediate attention. Focus on: File taxes",
	}}

	return &agentFixture{
		uc:   NewAgentUsecase(ai, calendar, email, tasks, chatUc),
		ai:   ai,
		chat: chatUc,
		db:   db,
	}
}

func TestChatPersistsBothMessages(t *testing.T) {
	f := newAgentFixture(t)
	ctx := context.Background()

	result, err := f.uc.Chat(ctx, "user-1", "what should I do first?")
	require.NoError(t, err)
	assert.Equal(t, "assistant answer", result.Reply)
	require.NotEmpty(t, result.ConversationID)

	messages, err := f.chat.History(ctx, result.ConversationID, 0)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, chatdomain.RoleUser, messages[0].Role)
	assert.Equal(t, "what should I do first?", messages[0].Content)
	assert.Equal(t, chatdomain.RoleAssistant, messages[1].Role)
	assert.Equal(t, "assistant answer", messages[1].Content)
}

func TestChatPromptCarriesHistoryAndWorkspace(t *testing.T) {
	f := newAgentFixture(t)
	ctx := context.Background()

	_, err := f.uc.Chat(ctx, "user-1", "first question")
	require.NoError(t, err)
	_, err = f.uc.Chat(ctx, "user-1", "second question")
	require.NoError(t, err)

	require.Len(t, f.ai.prompts, 2)
	prompt := f.ai.prompts[1]
	assert.Contains(t, prompt, "Previous conversation:")
	assert.Contains(t, prompt, "User: first question")
	assert.Contains(t, prompt, "Assistant: assistant answer")
	assert.Contains(t, prompt, "Current message:\nsecond question")

	// Workspace context rides along.
	assert.Contains(t, prompt, "Standup")
	assert.Contains(t, prompt, "URGENT: invoice")
	assert.Contains(t, prompt, "File taxes")
}

func TestChatRejectsEmptyMessage(t *testing.T) {
	f := newAgentFixture(t)

	_, err := f.uc.Chat(context.Background(), "user-1", "   ")
	assert.ErrorIs(t, err, ErrMessageMissing)
}

func TestChatDoesNotStoreReplyOnLLMFailure(t *testing.T) {
	f := newAgentFixture(t)
	ctx := context.Background()

	f.ai.err = errors.New("model overloaded")
	_, err := f.uc.Chat(ctx, "user-1", "hello?")
	require.Error(t, err)

	conv, err := f.chat.ActiveConversation(ctx, "user-1")
	require.NoError(t, err)
	messages, err := f.chat.History(ctx, conv.ID, 0)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, chatdomain.RoleUser, messages[0].Role)
}

func TestDailySummaryPromptIncludesContext(t *testing.T) {
	f := newAgentFixture(t)

	text, err := f.uc.DailySummary(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "assistant answer", text)

	require.Len(t, f.ai.prompts, 1)
	prompt := f.ai.prompts[0]
	assert.Contains(t, prompt, "analyze my day")
	assert.Contains(t, prompt, "Standup")
	assert.Contains(t, prompt, "Today's calendar events:")
}

func TestWorkspaceContextDegradesOnSourceFailure(t *testing.T) {
	f := newAgentFixture(t)
	ctx := context.Background()

	// Rebuild with a failing calendar source.
	chatUc := f.chat
	calendar := &fakeCalendarUsecase{err: errors.New("calendar down")}
	email := &fakeEmailUsecase{}
	tasks := &fakeTaskUsecase{}
	uc := NewAgentUsecase(f.ai, calendar, email, tasks, chatUc)

	_, err := uc.UrgentItems(ctx, "user-1")
	require.NoError(t, err)

	prompt := f.ai.prompts[len(f.ai.prompts)-1]
	assert.Contains(t, prompt, "(calendar unavailable)")
	assert.Contains(t, prompt, "(no unread emails)")
	assert.Contains(t, prompt, "(no active tasks)")
}
