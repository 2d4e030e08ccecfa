package notify

import (
	"fmt"
	"strings"
	"time"

	"github.com/okanin/summon/internal/execshell"
)

const (
	successTitleConstant         = "Command Succeeded"
	failureTitleConstant         = "Command Failed"
	timeoutTitleConstant         = "Command Timed Out"
	appFocusFailureTitleConstant = "App Launch Failed"

	commandLinePrefixConstant      = "$ "
	bodySeparatorConstant          = "\n"
	ellipsisConstant               = "..."
	commandRuneLimitConstant       = 50
	detailRuneLimitConstant        = 200
	noOutputPlaceholderConstant    = "(no output)"
	exitCodeDetailTemplateConstant = "Exit code: %d"
	timeoutDetailTemplateConstant  = "Command timed out after %s"
)

// Payload carries one notification ready for delivery.
type Payload struct {
	Title   string
	Body    string
	IsError bool
}

// NewSuccessPayload reports a command that completed with exit code zero.
func NewSuccessPayload(commandText string, commandOutput string) Payload {
	detail := strings.TrimSpace(commandOutput)
	if len(detail) == 0 {
		detail = noOutputPlaceholderConstant
	}
	return Payload{
		Title: successTitleConstant,
		Body:  buildCommandBody(commandText, detail),
	}
}

// NewFailurePayload reports a command that completed with a non-zero exit
// code, preferring captured standard error over the bare exit code.
func NewFailurePayload(commandText string, result execshell.ExecutionResult) Payload {
	detail := strings.TrimSpace(result.StandardError)
	if len(detail) == 0 {
		detail = fmt.Sprintf(exitCodeDetailTemplateConstant, result.ExitCode)
	}
	return Payload{
		Title:   failureTitleConstant,
		Body:    buildCommandBody(commandText, detail),
		IsError: true,
	}
}

// NewTimeoutPayload reports a command whose process group was terminated at
// the deadline.
func NewTimeoutPayload(commandText string, timeout time.Duration) Payload {
	return Payload{
		Title:   timeoutTitleConstant,
		Body:    buildCommandBody(commandText, fmt.Sprintf(timeoutDetailTemplateConstant, timeout)),
		IsError: true,
	}
}

// NewExecutionFailurePayload reports a command that never started.
func NewExecutionFailurePayload(commandText string, failure error) Payload {
	detail := ""
	if failure != nil {
		detail = failure.Error()
	}
	return Payload{
		Title:   failureTitleConstant,
		Body:    buildCommandBody(commandText, detail),
		IsError: true,
	}
}

// NewAppFocusFailurePayload reports an application that could not be
// activated or launched.
func NewAppFocusFailurePayload(displayName string, failure error) Payload {
	body := truncateRunes(displayName, commandRuneLimitConstant)
	if failure != nil {
		body += bodySeparatorConstant + truncateRunes(failure.Error(), detailRuneLimitConstant)
	}
	return Payload{
		Title:   appFocusFailureTitleConstant,
		Body:    body,
		IsError: true,
	}
}

// buildCommandBody echoes the submitted command and appends the outcome
// detail, both bounded so the payload fits a notification bubble.
func buildCommandBody(commandText string, detail string) string {
	body := commandLinePrefixConstant + truncateRunes(commandText, commandRuneLimitConstant)
	trimmedDetail := strings.TrimSpace(detail)
	if len(trimmedDetail) > 0 {
		body += bodySeparatorConstant + truncateRunes(trimmedDetail, detailRuneLimitConstant)
	}
	return body
}

func truncateRunes(text string, runeLimit int) string {
	textRunes := []rune(text)
	if len(textRunes) <= runeLimit {
		return text
	}
	return string(textRunes[:runeLimit-len(ellipsisConstant)]) + ellipsisConstant
}
