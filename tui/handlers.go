package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tonneli-cli/tonneli/log"
	"github.com/tonneli-cli/tonneli/nav"
)

// resultMsg carries the completion of a request back into the event loop.
type resultMsg struct {
	request nav.Request
	result  nav.Result
}

// execute runs the request against the service. A previous call still in flight is cancelled.
func (b *statefulBubble) execute(request nav.Request) tea.Cmd {
	b.stop()

	ctx, cancel := context.WithCancel(context.Background())
	b.cancel = cancel
	svc := b.service

	return func() tea.Msg {
		defer cancel()

		result := nav.Result{Seq: request.Seq, Kind: request.Kind}

		switch request.Kind {
		case nav.SearchRequest:
			log.Infof("searching %q in %s", request.Query, request.City.ID)
			result.Addresses, result.Err = svc.Search(ctx, request.City.ID, request.Query)
		case nav.ScheduleRequest:
			log.Infof("fetching schedule of %s in %s", request.Ref, request.City.ID)
			result.Events, result.Err = svc.Schedule(ctx, request.City.ID, request.Ref)
		}

		if result.Err != nil {
			log.Error(result.Err)
		}

		return resultMsg{request: request, result: result}
	}
}
