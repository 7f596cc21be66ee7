// Package console 는 flow 의 대화 기록을 터미널에 출력한다.
package console

import (
	"fmt"
	"io"
	"strings"

	"tour-planner/cmd/planner/flow"
	"tour-planner/models"
)

const divider = "----------------------------------------"

// Renderer 는 이미 출력한 항목 수를 기억하고 새 항목만 출력한다.
// epoch 가 바뀌면(초기화) 구분선을 긋고 처음부터 다시 출력한다.
type Renderer struct {
	out     io.Writer
	printed int
	epoch   uint64
	// ShowUser 가 false 면 사용자 입력은 다시 출력하지 않는다. REPL 에서는 이미 화면에 있다.
	ShowUser bool
}

func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{out: out}
}

// Render 는 flow.Epoch() 와 flow.Transcript() 를 함께 받는다.
func (r *Renderer) Render(epoch uint64, transcript []flow.Message) {
	if epoch != r.epoch || len(transcript) < r.printed {
		if r.printed > 0 {
			fmt.Fprintln(r.out, divider)
		}
		r.epoch = epoch
		r.printed = 0
	}
	for _, m := range transcript[r.printed:] {
		r.write(m)
	}
	r.printed = len(transcript)
}

func (r *Renderer) write(m flow.Message) {
	if m.Sender == flow.SenderUser {
		if r.ShowUser {
			fmt.Fprintf(r.out, "> %s\n", m.Text)
		}
		return
	}

	switch m.Type {
	case flow.MessageError:
		fmt.Fprintf(r.out, "! %s\n", m.Text)
		if m.CreditAction {
			fmt.Fprintln(r.out, "  (type /credits to request more credits)")
		}
	case flow.MessageOptions:
		fmt.Fprintln(r.out, m.Text)
		for _, opt := range m.Options {
			fmt.Fprintf(r.out, "  * %s\n", opt)
		}
	case flow.MessageItinerary:
		fmt.Fprintln(r.out, divider)
		fmt.Fprintln(r.out, PlainText(m.Text))
		if m.PlanID != "" {
			fmt.Fprintf(r.out, "(plan id: %s)\n", m.PlanID)
		}
		fmt.Fprintln(r.out, divider)
	case flow.MessageGuides:
		fmt.Fprintln(r.out, m.Text)
		for _, g := range m.Guides {
			writeGuide(r.out, g)
		}
	default:
		fmt.Fprintln(r.out, m.Text)
		if m.InputHint != "" {
			fmt.Fprintf(r.out, "  (%s)\n", m.InputHint)
		}
	}
}

func writeGuide(out io.Writer, g models.Guide) {
	name := g.Name
	if name == "" {
		name = "(unnamed guide)"
	}
	fmt.Fprintf(out, "  * %s\n", name)
	if len(g.Languages) > 0 {
		fmt.Fprintf(out, "    languages: %s\n", strings.Join(g.Languages, ", "))
	}
	if len(g.Activities) > 0 {
		fmt.Fprintf(out, "    activities: %s\n", strings.Join(g.Activities, ", "))
	}
	if bio := strings.TrimSpace(g.Bio); bio != "" {
		fmt.Fprintf(out, "    %s\n", bio)
	}
}
