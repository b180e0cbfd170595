package tui

import (
	"os"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"gtamap/internal/basemap"
	"gtamap/internal/geom"
	"gtamap/internal/state"
)

// Options are the values the shell is built from.
type Options struct {
	Catalog    basemap.Catalog
	DefaultMap basemap.Definition
	Icon       IconDefinition
	// Dir is where the file picker starts. Empty means the working directory.
	Dir string
	// Dataset, when set, is loaded right after start.
	Dataset string
	Logger  zerolog.Logger
	// Rasters caches decoded base map images. Nil gets a private cache.
	Rasters *basemap.Cache
}

type Model struct {
	width  int
	height int
	layout layout

	log     zerolog.Logger
	store   *state.Store
	catalog basemap.Catalog
	icon    IconDefinition
	rasters *basemap.Cache

	surface  Surface
	index    *geom.Index
	indexRev uint64

	helpVisible bool
	status      string

	// file picker
	showPicker  bool
	cwd         string
	l           list.Model
	items       []list.Item
	datasetPath string
	preload     string

	// popup
	popupID     string
	thumbs      *basemap.Cache
	thumbFailed map[string]bool

	// marker table
	showTable bool
	tbl       table.Model

	// paste mode
	pasteMode bool
	ta        textarea.Model

	// pointer
	readout  readout
	dragging bool
	dragX    int
	dragY    int
}

func New(opts Options) Model {
	if opts.Rasters == nil {
		opts.Rasters = basemap.NewCache()
	}
	def := opts.DefaultMap
	if def.Image == "" {
		def = opts.Catalog.Satellite
	}
	m := Model{
		log:         opts.Logger,
		store:       state.New(def),
		catalog:     opts.Catalog,
		icon:        opts.Icon,
		rasters:     opts.Rasters,
		helpVisible: true,
		status:      "gtamap ready",
		cwd:         opts.Dir,
		preload:     opts.Dataset,
		thumbs:      basemap.NewCache(),
		thumbFailed: map[string]bool{},
	}
	if m.cwd == "" {
		m.cwd, _ = os.Getwd()
	}
	m.surface = newSurface(def, 0, 0, m.rasters)
	m.syncIndex()

	m.l = newFileList()

	m.ta = textarea.New()
	m.ta.Placeholder = "Paste dataset JSON here. Press Enter to load; Esc to cancel."
	m.ta.CharLimit = 0
	m.ta.ShowLineNumbers = false
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)
	m.ta.KeyMap.InsertNewline.SetEnabled(false)

	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)
	m.refreshTable()
	return m
}

// Init loads the first base map image and the preloaded dataset, if any.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.surfaceCmd()}
	if m.preload != "" {
		cmds = append(cmds, loadDatasetCmd(m.preload))
	}
	return tea.Batch(cmds...)
}

// Store returns the view state shared by every copy of the model.
func (m Model) Store() *state.Store { return m.store }

// surfaceCmd loads the surface image unless it is cached already.
func (m Model) surfaceCmd() tea.Cmd {
	if m.surface.raster != nil {
		return nil
	}
	return loadRasterCmd(m.rasters, m.surface.Key())
}

// setActiveMap switches the base map. A different image rebuilds the
// surface at the default centre and zoom; the same image keeps it.
func (m *Model) setActiveMap(def basemap.Definition) tea.Cmd {
	m.store.SetActiveMap(def)
	m.status = "map: " + def.Label
	active := m.store.ActiveMap()
	if m.surface.Key() == active.Image {
		return nil
	}
	m.surface = newSurface(active, m.layout.mapW, m.layout.mapH, m.rasters)
	m.log.Debug().Str("map", active.Key).Msg("surface rebuilt")
	return m.surfaceCmd()
}
