package tui

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"

	"gtamap/internal/dataset"
)

const sidebarWidth = 32

type fileItem struct {
	title, desc string
	path        string
	isDir       bool
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

func newFileList() list.Model {
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	l := list.New(nil, d, 0, 0)
	l.Title = "Choose File"
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.DisableQuitKeybindings()
	return l
}

// refreshDir lists sub-directories and dataset files of m.cwd.
func (m *Model) refreshDir() {
	entries, err := os.ReadDir(m.cwd)
	if err != nil {
		m.log.Warn().Err(err).Str("dir", m.cwd).Msg("read dir failed")
		m.status = "read dir error: " + err.Error()
		return
	}
	var dirs, files []list.Item
	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		p := filepath.Join(m.cwd, name)
		if e.IsDir() {
			dirs = append(dirs, fileItem{title: name + "/", desc: "dir", path: p, isDir: true})
			continue
		}
		ext := strings.ToLower(filepath.Ext(name))
		if lo.Contains(dataset.Extensions, ext) {
			files = append(files, fileItem{title: name, desc: ext, path: p})
		}
	}
	byTitle := func(items []list.Item) {
		sort.SliceStable(items, func(i, j int) bool { return items[i].(fileItem).Title() < items[j].(fileItem).Title() })
	}
	byTitle(dirs)
	byTitle(files)

	items := []list.Item{}
	if parent := filepath.Dir(m.cwd); parent != m.cwd {
		items = append(items, fileItem{title: "../", desc: "dir", path: parent, isDir: true})
	}
	items = append(items, dirs...)
	items = append(items, files...)
	m.items = items
	m.l.SetItems(items)
	m.l.Title = "Choose File: " + filepath.Base(m.cwd)
	if len(files) == 0 {
		m.status = "no dataset files in " + m.cwd
	}
}

func (m *Model) openPicker() {
	m.showPicker = true
	m.refreshDir()
	m.relayout()
}

func (m *Model) closePicker() {
	m.showPicker = false
	m.relayout()
}

// choose acts on the highlighted picker entry: directories are entered,
// files start a load and close the picker.
func (m *Model) choose() tea.Cmd {
	it, ok := m.l.SelectedItem().(fileItem)
	if !ok {
		return nil
	}
	if it.isDir {
		m.cwd = it.path
		m.l.ResetSelected()
		m.l.ResetFilter()
		m.refreshDir()
		return nil
	}
	m.closePicker()
	return loadDatasetCmd(it.path)
}
