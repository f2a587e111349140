package cli

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/alexanderramin/placar/internal/cli/formatter"
	"github.com/alexanderramin/placar/internal/imageref"
	"github.com/alexanderramin/placar/internal/service"
	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// photoExtensions are the formats the image registry can decode.
var photoExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tiff", ".webp"}

var errNoPhotos = errors.New("photo slots are not available")

// photoView browses the filesystem for a marker picture.
type photoView struct {
	state  *SharedState
	slot   imageref.SlotName
	picker filepicker.Model
	errMsg string
}

func newPhotoView(state *SharedState, slot imageref.SlotName) *photoView {
	fp := filepicker.New()
	fp.AllowedTypes = photoExtensions
	fp.ShowPermissions = false
	fp.CurrentDirectory = photoStartDir(state)
	fp.Styles.Selected = fp.Styles.Selected.Foreground(formatter.ColorHeader)
	fp.Styles.Cursor = fp.Styles.Cursor.Foreground(formatter.ColorHeader)
	v := &photoView{state: state, slot: slot, picker: fp}
	if state.Height > 0 {
		v.picker, _ = v.picker.Update(v.pickerSize())
	}
	return v
}

// photoStartDir opens the picker in the assets directory when it exists.
func photoStartDir(state *SharedState) string {
	if dir := state.App.Config.AssetsDir; dir != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

func (v *photoView) pickerSize() tea.WindowSizeMsg {
	return tea.WindowSizeMsg{Width: v.state.Width, Height: v.state.ContentHeight()}
}

func (v *photoView) ID() ViewID    { return ViewPhotoPicker }
func (v *photoView) Title() string { return "Photo · " + slotLabel(v.slot) }

func (v *photoView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑↓", "move")),
		key.NewBinding(key.WithKeys("right", "left"), key.WithHelp("→←", "open/back")),
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "default")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

func (v *photoView) Init() tea.Cmd {
	return v.picker.Init()
}

func (v *photoView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		var cmd tea.Cmd
		v.picker, cmd = v.picker.Update(v.pickerSize())
		return v, cmd
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc:
			return v, popView()
		case tea.KeyCtrlX:
			return v, tea.Sequence(popView(), clearPhoto(v.state, v.slot))
		}
	case boardUpdatedMsg, photoLoadedMsg:
		return v, nil
	}

	var cmd tea.Cmd
	v.picker, cmd = v.picker.Update(msg)

	if ok, path := v.picker.DidSelectFile(msg); ok {
		return v, tea.Sequence(popView(), loadPhotoCmd(v.state, v.slot, path))
	}
	if ok, path := v.picker.DidSelectDisabledFile(msg); ok {
		v.errMsg = path + " is not a supported image"
		return v, cmd
	}
	return v, cmd
}

func (v *photoView) View() string {
	var b strings.Builder
	b.WriteString(formatter.StyleHeader.Render("Choose the " + slotLabel(v.slot) + " photo"))
	b.WriteString("\n")
	b.WriteString(formatter.Dim(v.picker.CurrentDirectory))
	b.WriteString("\n\n")
	b.WriteString(v.picker.View())
	if v.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(formatter.StyleRed.Render(v.errMsg))
	}
	return b.String()
}

func slotLabel(slot imageref.SlotName) string {
	return string(slot)
}

// loadPhotoCmd decodes the picture off the UI loop and reports back with
// a photoLoadedMsg.
func loadPhotoCmd(state *SharedState, slot imageref.SlotName, path string) tea.Cmd {
	photos := state.App.Photos
	if photos == nil {
		return outputCmd(commandError(errNoPhotos))
	}
	return func() tea.Msg {
		err := photos.Load(context.Background(), slot, path)
		return photoLoadedMsg{slot: slot, path: path, err: err}
	}
}

// clearPhoto puts the stage default picture back on the slot's marker.
func clearPhoto(state *SharedState, slot imageref.SlotName) tea.Cmd {
	photos := state.App.Photos
	if photos == nil {
		return outputCmd(commandError(errNoPhotos))
	}
	if err := photos.Clear(context.Background(), slot); err != nil {
		return outputCmd(commandError(err))
	}
	state.Notice = formatter.Dim(slotLabel(slot) + " photo reset to the stage default.")
	return boardCmd(service.Update{Board: state.Board})
}
