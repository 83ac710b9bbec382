package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	calendardomain "tabsy-backend/internal/calendar/domain"
	calendarusecase "tabsy-backend/internal/calendar/usecase"
	chatdomain "tabsy-backend/internal/chat/domain"
	chatusecase "tabsy-backend/internal/chat/usecase"
	emaildomain "tabsy-backend/internal/email/domain"
	emailusecase "tabsy-backend/internal/email/usecase"
	taskusecase "tabsy-backend/internal/task/usecase"
	"tabsy-backend/pkg/ai"
)

var ErrMessageMissing = errors.New("message is required")

const assistantInstructions = `You are an AI personal assistant helping the user manage their day effectively.

When responding:
- Be proactive but not intrusive
- Provide clear, actionable recommendations
- Explain your reasoning when suggesting changes
- Consider context like meeting importance, email urgency, and task deadlines
- Always summarize key action items at the end
- Flag urgent items that need immediate attention`

const dailySummaryPrompt = `Please analyze my day and provide a comprehensive summary.

Steps:
1. Check my calendar events for today
2. Review unread emails and identify urgent ones
3. Get my active tasks and prioritize them
4. Provide recommendations for optimizing my day

Format your response as a structured summary with:
- Top 3 priority items for today
- Urgent emails requiring response
- Recommended task order
- Suggested schedule adjustments
- Available focus time blocks`

const optimizeSchedulePrompt = `Analyze my calendar and tasks, then suggest optimizations for better productivity.

Consider:
- Meeting clustering to create focus blocks
- Buffer time between meetings
- Alignment of tasks with available time slots
- Energy management (complex tasks in morning, admin in afternoon)

Provide specific, actionable recommendations.`

const urgentItemsPrompt = `Identify all urgent items requiring immediate attention:

1. Meetings starting within the next 2 hours
2. High-priority emails from today
3. Tasks due within the next 4 hours

For each urgent item, suggest an immediate action.`

type agentUsecase struct {
	aiService       ai.Service
	calendarUsecase calendarusecase.CalendarUsecase
	emailUsecase    emailusecase.EmailUsecase
	taskUsecase     taskusecase.TaskUsecase
	chatUsecase     chatusecase.ChatUsecase
}

func NewAgentUsecase(
	aiService ai.Service,
	calendarUsecase calendarusecase.CalendarUsecase,
	emailUsecase emailusecase.EmailUsecase,
	taskUsecase taskusecase.TaskUsecase,
	chatUsecase chatusecase.ChatUsecase,
) AgentUsecase {
	return &agentUsecase{
		aiService:       aiService,
		calendarUsecase: calendarUsecase,
		emailUsecase:    emailUsecase,
		taskUsecase:     taskUsecase,
		chatUsecase:     chatUsecase,
	}
}

func (u *agentUsecase) DailySummary(ctx context.Context, userID string) (string, error) {
	return u.generateWithContext(ctx, userID, dailySummaryPrompt)
}

func (u *agentUsecase) OptimizeSchedule(ctx context.Context, userID string) (string, error) {
	return u.generateWithContext(ctx, userID, optimizeSchedulePrompt)
}

func (u *agentUsecase) UrgentItems(ctx context.Context, userID string) (string, error) {
	return u.generateWithContext(ctx, userID, urgentItemsPrompt)
}

func (u *agentUsecase) Chat(ctx context.Context, userID, message string) (*ChatResult, error) {
	if strings.TrimSpace(message) == "" {
		return nil, ErrMessageMissing
	}

	conversation, err := u.chatUsecase.ActiveConversation(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("unable to resolve conversation: %v", err)
	}

	if _, err := u.chatUsecase.StoreMessage(ctx, conversation.ID, chatdomain.RoleUser, message); err != nil {
		return nil, err
	}

	transcript, err := u.chatUsecase.BuildTranscript(ctx, conversation.ID, 10)
	if err != nil {
		return nil, err
	}

	prompt := message
	if transcript != "" {
		prompt = fmt.Sprintf("Previous conversation:\n%s\n\nCurrent message:\n%s", transcript, message)
	}
	prompt = assistantInstructions + "\n\n" + u.workspaceContext(ctx, userID) + "\n\n" + prompt

	reply, err := u.aiService.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("unable to generate response: %v", err)
	}
	if reply == "" {
		reply = "I processed your request."
	}

	if _, err := u.chatUsecase.StoreMessage(ctx, conversation.ID, chatdomain.RoleAssistant, reply); err != nil {
		return nil, err
	}

	return &ChatResult{ConversationID: conversation.ID, Reply: reply}, nil
}

func (u *agentUsecase) generateWithContext(ctx context.Context, userID, directive string) (string, error) {
	prompt := assistantInstructions + "\n\n" + u.workspaceContext(ctx, userID) + "\n\n" + directive
	reply, err := u.aiService.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("unable to generate response: %v", err)
	}
	return reply, nil
}

// workspaceContext renders today's events, unread emails and prioritized
// tasks as a text block for the prompt. The three sources are fetched
// concurrently; a failing source degrades to a note instead of failing the
// whole request.
func (u *agentUsecase) workspaceContext(ctx context.Context, userID string) string {
	var (
		wg     sync.WaitGroup
		events []*calendardomain.CalendarEvent
		emails []*emaildomain.Email
		tasks  *taskusecase.PrioritizeResult

		eventsErr, emailsErr, tasksErr error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		now := time.Now()
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		events, eventsErr = u.calendarUsecase.GetEventsByDateRange(ctx, userID, start, start.AddDate(0, 0, 1))
	}()
	go func() {
		defer wg.Done()
		emails, emailsErr = u.emailUsecase.GetEmails(ctx, userID, emailusecase.ListOptions{UnreadOnly: true})
	}()
	go func() {
		defer wg.Done()
		tasks, tasksErr = u.taskUsecase.Prioritize(ctx, userID)
	}()
	wg.Wait()

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Current date and time: %s\n\n", time.Now().Format(time.RFC3339)))

	b.WriteString("Today's calendar events:\n")
	switch {
	case eventsErr != nil:
		log.Printf("[WARN] agent context: unable to fetch calendar events: %v", eventsErr)
		b.WriteString("(calendar unavailable)\n")
	case len(events) == 0:
		b.WriteString("(no events today)\n")
	default:
		for _, e := range events {
			b.WriteString(fmt.Sprintf("- %s (%s - %s)\n",
				e.Title, e.StartTime.Format("15:04"), e.EndTime.Format("15:04")))
		}
	}

	b.WriteString("\nUnread emails:\n")
	switch {
	case emailsErr != nil:
		log.Printf("[WARN] agent context: unable to fetch emails: %v", emailsErr)
		b.WriteString("(inbox unavailable)\n")
	case len(emails) == 0:
		b.WriteString("(no unread emails)\n")
	default:
		for i, e := range emails {
			if i >= 10 {
				b.WriteString(fmt.Sprintf("...and %d more\n", len(emails)-i))
				break
			}
			b.WriteString(fmt.Sprintf("- [%s] %s from %s\n", e.Priority, e.Subject, e.Sender))
		}
	}

	b.WriteString("\nActive tasks (most urgent first):\n")
	switch {
	case tasksErr != nil:
		log.Printf("[WARN] agent context: unable to fetch tasks: %v", tasksErr)
		b.WriteString("(tasks unavailable)\n")
	case len(tasks.Tasks) == 0:
		b.WriteString("(no active tasks)\n")
	default:
		for _, t := range tasks.Tasks {
			due := "no due date"
			if t.DueDate != nil {
				due = "due " + t.DueDate.Format("2006-01-02 15:04")
			}
			b.WriteString(fmt.Sprintf("- %s (%s priority, %s, urgency %d)\n",
				t.Title, t.Priority, due, t.UrgencyScore))
		}
	}

	return b.String()
}
