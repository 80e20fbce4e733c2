package dashboard

import (
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/ideavault/internal/domain/idea"
)

type formField int

const (
	fieldTitle formField = iota
	fieldDescription
	fieldCategory
	fieldCount
)

// submitForm collects a new idea.
type submitForm struct {
	title       textinput.Model
	description textarea.Model
	category    int // index into choices; 0 is "no category"
	choices     []idea.Category
	focus       formField
}

func newSubmitForm() submitForm {
	title := textinput.New()
	title.Placeholder = "A short, descriptive title"
	title.CharLimit = 120
	title.Width = 60
	title.Focus()

	description := textarea.New()
	description.Placeholder = "What is the idea and what problem does it solve?"
	description.CharLimit = 2000
	description.SetWidth(60)
	description.SetHeight(5)
	description.ShowLineNumbers = false

	return submitForm{
		title:       title,
		description: description,
		choices:     append([]idea.Category{idea.CategoryNone}, idea.Categories()...),
		focus:       fieldTitle,
	}
}

// Draft returns the idea described by the form.
func (f submitForm) Draft() idea.Draft {
	return idea.Draft{
		Title:       f.title.Value(),
		Description: f.description.Value(),
		Category:    f.choices[f.category],
	}
}

// Category returns the selected category.
func (f submitForm) Category() idea.Category {
	return f.choices[f.category]
}

// Reset clears every field and focuses the title.
func (f submitForm) Reset() submitForm {
	f.title.Reset()
	f.description.Reset()
	f.category = 0
	return f.setFocus(fieldTitle)
}

// FocusNext moves focus forward, wrapping around.
func (f submitForm) FocusNext() submitForm {
	return f.setFocus((f.focus + 1) % fieldCount)
}

// FocusPrev moves focus backward, wrapping around.
func (f submitForm) FocusPrev() submitForm {
	return f.setFocus((f.focus + fieldCount - 1) % fieldCount)
}

// CycleCategory moves the category selection by delta, wrapping around.
func (f submitForm) CycleCategory(delta int) submitForm {
	n := len(f.choices)
	f.category = ((f.category+delta)%n + n) % n
	return f
}

func (f submitForm) setFocus(field formField) submitForm {
	f.focus = field
	f.title.Blur()
	f.description.Blur()
	switch field {
	case fieldTitle:
		f.title.Focus()
	case fieldDescription:
		f.description.Focus()
	}
	return f
}

// Update forwards input to the focused text field.
func (f submitForm) Update(msg tea.Msg) (submitForm, tea.Cmd) {
	var cmd tea.Cmd
	switch f.focus {
	case fieldTitle:
		f.title, cmd = f.title.Update(msg)
	case fieldDescription:
		f.description, cmd = f.description.Update(msg)
	}
	return f, cmd
}
