package response

import (
	"fmt"
	"io"
	"os"
	"strings"

	"dario.lol/hover/internal/ui"
)

type summaryLine struct {
	key   string
	value any
}

type Builder struct {
	out            io.Writer
	title          string
	summary        []summaryLine
	items          []string
	footerSuccess  string
	err            error
	errTitle       string
	noItemsMessage string
}

func New() *Builder {
	return &Builder{out: os.Stdout}
}

// To redirects the output, mostly for tests.
func (b *Builder) To(w io.Writer) *Builder {
	b.out = w
	return b
}

func (b *Builder) Title(title string) *Builder {
	b.title = title
	return b
}

// Summary adds a line to the summary box. Lines keep their insertion order.
func (b *Builder) Summary(key string, value any) *Builder {
	b.summary = append(b.summary, summaryLine{key: key, value: value})
	return b
}

func (b *Builder) AddItem(title, content string) *Builder {
	b.items = append(b.items, ui.Box(content, title))
	return b
}

func (b *Builder) NoItemsMessage(message string) *Builder {
	b.noItemsMessage = message
	return b
}

func (b *Builder) FooterSuccess(message string) *Builder {
	b.footerSuccess = message
	return b
}

func (b *Builder) FooterSuccessf(format string, a ...any) *Builder {
	b.footerSuccess = fmt.Sprintf(format, a...)
	return b
}

func (b *Builder) Error(title string, err error) *Builder {
	b.errTitle = title
	b.err = err
	return b
}

func (b *Builder) Display() {
	if b.err != nil {
		fmt.Fprintln(b.out, ui.ErrorMessage(b.errTitle, b.err))
		return
	}

	if b.title != "" {
		fmt.Fprintln(b.out, ui.Title(b.title))
		fmt.Fprintln(b.out)
	}

	if len(b.summary) > 0 {
		var summaryContent strings.Builder
		for _, line := range b.summary {
			summaryContent.WriteString(fmt.Sprintf("%-12s %v\n", line.key, line.value))
		}
		fmt.Fprintln(b.out, ui.Box(strings.TrimSpace(summaryContent.String()), "Summary"))
		fmt.Fprintln(b.out)
	}

	if len(b.items) == 0 {
		if b.noItemsMessage != "" {
			fmt.Fprintln(b.out, ui.Warning(b.noItemsMessage))
		}
	} else {
		for _, item := range b.items {
			fmt.Fprint(b.out, item, "\n\n")
		}
	}

	if b.footerSuccess != "" {
		fmt.Fprintln(b.out, ui.Success(b.footerSuccess))
	}
}

type ItemContentBuilder struct {
	sb strings.Builder
}

func NewItemContent() *ItemContentBuilder {
	return &ItemContentBuilder{}
}

func (ic *ItemContentBuilder) Add(key, value string) *ItemContentBuilder {
	ic.sb.WriteString(fmt.Sprintf("%-12s %s\n", key, value))
	return ic
}

func (ic *ItemContentBuilder) AddRaw(content string) *ItemContentBuilder {
	ic.sb.WriteString(content)
	ic.sb.WriteString("\n")
	return ic
}

func (ic *ItemContentBuilder) String() string {
	return strings.TrimSpace(ic.sb.String())
}
