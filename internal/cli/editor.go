package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/graphdesk/pkg/errors"
	"github.com/matzehuels/graphdesk/pkg/filter"
	"github.com/matzehuels/graphdesk/pkg/graph"
	"github.com/matzehuels/graphdesk/pkg/graphstore"
	"github.com/matzehuels/graphdesk/pkg/interact"
	"github.com/matzehuels/graphdesk/pkg/render"
	"github.com/matzehuels/graphdesk/pkg/render/term"
)

// uiCommand creates the ui command, the interactive editor.
func (c *CLI) uiCommand() *cobra.Command {
	var logFile string

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive graph editor",
		Long: `Open the interactive graph editor in the terminal.

Mouse:
  hover           show a node's description or a link's type
  drag            move a node (saved on release)
  right-click     open the node menu (set as source / target)
  wheel           zoom

Keys:
  /  filters      n  new node     e  edge type     enter  create edge
  c  clear filters  x  clear edge  r  refresh       f  fit
  +/-  zoom       arrows  pan     tab  side panel   q  quit

Filters are restored from the previous session and expire after seven days.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			client, err := newGateway(cfg)
			if err != nil {
				return err
			}
			timeout, err := cfg.Timeout()
			if err != nil {
				return err
			}

			if logFile == "" {
				logFile = logPath()
			}
			f, err := openLogFile(logFile)
			if err != nil {
				return err
			}
			defer f.Close()
			logger := newLogger(f, c.Logger.GetLevel())
			if c.Logger.GetLevel() <= log.DebugLevel {
				registerLogHooks(logger)
			}
			ctx = withLogger(ctx, logger)

			state, err := openState(ctx, cfg)
			if err != nil {
				return err
			}
			defer state.Close()

			store := graphstore.New(client, logger.WithPrefix("store"), graphstore.WithTimeout(timeout))
			filters := filter.New(state, store, logger.WithPrefix("filter"))
			filters.Load(ctx)

			logger.Info("editor started", "backend", cfg.Backend.URL, "filters", filters.Criteria().Map())
			m := newEditorModel(store, filters, cfg.View.Zoom, loggerFromContext(ctx))
			p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen(), tea.WithMouseAllMotion())
			if _, err := p.Run(); err != nil {
				return err
			}
			logger.Info("editor closed")
			return nil
		},
	}

	cmd.Flags().StringVar(&logFile, "log-file", "", "log file (default "+logPath()+")")
	return cmd
}

// =============================================================================
// Editor Model
// =============================================================================

const (
	panelWidth = 36
	zoomStep   = 1.25
	minZoom    = 0.05
	maxZoom    = 40
	panStep    = 4 // cells per arrow key press
	fitPadding = 40
)

// form identifies the text form that has keyboard focus.
type form int

const (
	formNone form = iota
	formFilter
	formNode
	formEdge
)

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(colorDim).
			Padding(0, 1)
	sectionStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	menuStyle    = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
)

// editorModel is the bubbletea model of the interactive editor. Graph data
// lives in the store; everything else is view state.
type editorModel struct {
	store   *graphstore.Store
	filters *filter.Controller
	logger  *log.Logger
	style   render.Style
	cells   term.Styles

	state interact.State

	width, height int
	zoom          float64
	base          term.Viewport // fitted to the graph; zoom and pan apply on top
	pan           render.Point
	panel         bool

	focus      form
	field      int
	filterForm []textinput.Model // name, label, type
	nodeForm   []textinput.Model // name, labels, description
	edgeForm   []textinput.Model // type
	spinner    spinner.Model
	formErr    error
	status     string
}

func newEditorModel(store *graphstore.Store, filters *filter.Controller, zoom float64, logger *log.Logger) editorModel {
	if zoom <= 0 {
		zoom = 1
	}
	crit := filters.Criteria()
	m := editorModel{
		store:   store,
		filters: filters,
		logger:  logger,
		style:   render.DefaultStyle(),
		cells:   term.DefaultStyles(),
		zoom:    zoom,
		panel:   true,
		filterForm: []textinput.Model{
			newInput("name", crit.Name),
			newInput("label", crit.Label),
			newInput("type", crit.Type),
		},
		nodeForm: []textinput.Model{
			newInput("name (required)", ""),
			newInput("labels, comma separated", ""),
			newInput("description", ""),
		},
		edgeForm: []textinput.Model{newInput(graph.DefaultLinkType, "")},
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styleIconSpinner)),
	}
	m.filterForm[1].ShowSuggestions = true
	m.filterForm[2].ShowSuggestions = true
	m.nodeForm[1].ShowSuggestions = true
	m.edgeForm[0].ShowSuggestions = true
	return m
}

func newInput(placeholder, value string) textinput.Model {
	in := textinput.New()
	in.Prompt = "› "
	in.Placeholder = placeholder
	in.Width = panelWidth - 6
	in.CharLimit = 256
	in.SetValue(value)
	return in
}

func (m editorModel) Init() tea.Cmd {
	return tea.Batch(
		m.store.Fetch(m.filters.Criteria()),
		m.store.LoadVocabulary(),
		m.spinner.Tick,
	)
}

// =============================================================================
// Update
// =============================================================================

func (m editorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.base = m.fit()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.focus != formNone {
			return m.updateForm(msg)
		}
		return m.updateKeys(msg)

	case tea.MouseMsg:
		return m.updateMouse(msg)
	}

	return m.updateStore(msg)
}

// updateStore applies backend results and the view changes they imply.
func (m editorModel) updateStore(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case graphstore.NodeCreatedMsg:
		if msg.Err == nil {
			for i := range m.nodeForm {
				m.nodeForm[i].SetValue("")
			}
			m.status = "Created node " + msg.Record.ID
		}
	case graphstore.LinkCreatedMsg:
		if msg.Err == nil {
			m.state = m.state.EdgeSubmitted()
			m.edgeForm[0].SetValue("")
			m.status = "Created " + msg.Record.Type + " relationship"
		}
	case graphstore.LabelsMsg:
		m.filterForm[1].SetSuggestions(msg.Labels)
		m.nodeForm[1].SetSuggestions(msg.Labels)
	case graphstore.TypesMsg:
		m.filterForm[2].SetSuggestions(msg.Types)
		m.edgeForm[0].SetSuggestions(msg.Types)
	}

	wasEmpty := m.store.Snapshot().IsEmpty()
	handled, cmd := m.store.Update(msg)
	if !handled {
		return m, nil
	}
	if _, ok := msg.(graphstore.FetchedMsg); ok && wasEmpty {
		m.base = m.fit()
	}
	if m.store.Err() != nil {
		m.status = ""
	}
	return m, cmd
}

func (m editorModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.state.Menu != nil {
		switch msg.String() {
		case "s":
			m.state = m.state.SetSource()
			return m, nil
		case "t":
			m.state = m.state.SetTarget()
			return m, nil
		case "esc":
			m.state = m.state.ClickOutside()
			return m, nil
		}
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "tab":
		m.panel = !m.panel
	case "/":
		return m.focusForm(formFilter)
	case "n":
		return m.focusForm(formNode)
	case "e":
		return m.focusForm(formEdge)
	case "enter":
		return m.submitEdge()
	case "c":
		for i := range m.filterForm {
			m.filterForm[i].SetValue("")
		}
		m.status = "Filters cleared"
		return m, m.filters.Clear()
	case "x":
		m.state = m.state.ClearPending()
		m.edgeForm[0].SetValue("")
	case "r":
		return m, m.store.Refresh()
	case "f":
		m.pan = render.Point{}
		m.zoom = 1
		m.base = m.fit()
	case "+", "=":
		m.zoom = min(m.zoom*zoomStep, maxZoom)
	case "-":
		m.zoom = max(m.zoom/zoomStep, minZoom)
	case "left", "h":
		m.pan.X -= panStep / m.viewport().Scale
	case "right", "l":
		m.pan.X += panStep / m.viewport().Scale
	case "up", "k":
		m.pan.Y -= panStep * term.CellAspect / m.viewport().Scale
	case "down", "j":
		m.pan.Y += panStep * term.CellAspect / m.viewport().Scale
	case "esc":
		m.state = m.state.ClickOutside()
	}
	return m, nil
}

// =============================================================================
// Forms
// =============================================================================

func (m editorModel) inputs() []*textinput.Model {
	var ins []*textinput.Model
	switch m.focus {
	case formFilter:
		for i := range m.filterForm {
			ins = append(ins, &m.filterForm[i])
		}
	case formNode:
		for i := range m.nodeForm {
			ins = append(ins, &m.nodeForm[i])
		}
	case formEdge:
		ins = append(ins, &m.edgeForm[0])
	}
	return ins
}

func (m editorModel) focusForm(f form) (tea.Model, tea.Cmd) {
	m.focus, m.field, m.formErr = f, 0, nil
	m.panel = true
	return m, m.inputs()[0].Focus()
}

func (m editorModel) blur() editorModel {
	for _, in := range m.inputs() {
		in.Blur()
	}
	m.focus, m.field = formNone, 0
	return m
}

func (m editorModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ins := m.inputs()
	switch msg.String() {
	case "esc":
		return m.blur(), nil
	case "ctrl+c":
		return m, tea.Quit
	case "tab", "down":
		if len(ins) > 1 {
			ins[m.field].Blur()
			m.field = (m.field + 1) % len(ins)
			return m, ins[m.field].Focus()
		}
	case "shift+tab", "up":
		if len(ins) > 1 {
			ins[m.field].Blur()
			m.field = (m.field + len(ins) - 1) % len(ins)
			return m, ins[m.field].Focus()
		}
	case "enter":
		return m.submitForm()
	}

	var cmd tea.Cmd
	*ins[m.field], cmd = ins[m.field].Update(msg)
	return m, cmd
}

func (m editorModel) submitForm() (tea.Model, tea.Cmd) {
	switch m.focus {
	case formFilter:
		crit := graph.Criteria{
			Name:  m.filterForm[0].Value(),
			Label: m.filterForm[1].Value(),
			Type:  m.filterForm[2].Value(),
		}
		m = m.blur()
		m.status = "Filters applied"
		return m, m.filters.Apply(crit)

	case formNode:
		f, err := interact.ValidateNodeForm(m.nodeForm[0].Value(), m.nodeForm[1].Value(), m.nodeForm[2].Value())
		if err != nil {
			m.logger.Debug("node form rejected", "err", err)
			m.formErr = err
			return m, nil
		}
		cmd, err := m.store.CreateNode(f.Name, f.Labels, f.Description)
		if err != nil {
			m.formErr = err
			return m, nil
		}
		m = m.blur()
		m.formErr = nil
		return m, cmd

	case formEdge:
		m.state = m.state.SetEdgeType(m.edgeForm[0].Value())
		m = m.blur()
		if m.state.Pending.Source.IsSet() || m.state.Pending.Target.IsSet() {
			return m.submitEdge()
		}
	}
	return m, nil
}

// submitEdge creates the pending edge. Invalid input issues no request.
func (m editorModel) submitEdge() (tea.Model, tea.Cmd) {
	req, err := m.state.SubmitEdge()
	if err != nil {
		m.logger.Debug("edge rejected", "err", err)
		m.formErr = err
		return m, nil
	}
	cmd, err := m.store.CreateLink(req.SourceID, req.TargetID, req.Type, nil)
	if err != nil {
		m.formErr = err
		return m, nil
	}
	m.formErr = nil
	return m, cmd
}

// =============================================================================
// Mouse
// =============================================================================

// graphSize returns the size of the canvas in cells.
func (m editorModel) graphSize() (cols, rows int) {
	cols = m.width
	if m.panel {
		cols -= panelWidth + 1
	}
	return max(cols, 0), max(m.height-2, 0)
}

// viewport returns the world-to-cell mapping in effect.
func (m editorModel) viewport() term.Viewport {
	base := m.base
	if base.Scale == 0 {
		base = m.fit()
	}
	return term.Viewport{
		Center: render.Point{X: base.Center.X + m.pan.X, Y: base.Center.Y + m.pan.Y},
		Scale:  base.Scale * m.zoom,
	}
}

func (m editorModel) fit() term.Viewport {
	cols, rows := m.graphSize()
	cmds := render.Frame(m.store.Snapshot(), render.Hover{}, 1, m.style)
	return term.Fit(render.Bounds(cmds).Pad(fitPadding), cols, rows)
}

// world maps a screen position to world coordinates and reports whether
// it lies on the canvas.
func (m editorModel) world(x, y int) (render.Point, bool) {
	cols, rows := m.graphSize()
	row := y - 1
	if x < 0 || x >= cols || row < 0 || row >= rows {
		return render.Point{}, false
	}
	g := term.NewGrid(cols, rows, m.viewport())
	return g.ToWorld(x, row), true
}

// tolerance is the hit radius in world units: one cell height.
func (m editorModel) tolerance() float64 {
	return term.CellAspect / m.viewport().Scale
}

func (m editorModel) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	p, onCanvas := m.world(msg.X, msg.Y)
	snap := m.store.Snapshot()

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.zoom = min(m.zoom*zoomStep, maxZoom)

	case msg.Button == tea.MouseButtonWheelDown:
		m.zoom = max(m.zoom/zoomStep, minZoom)

	case msg.Action == tea.MouseActionMotion:
		if m.state.Dragging() {
			if !onCanvas {
				return m, nil
			}
			pos := graph.Position{X: p.X, Y: p.Y}
			m.state, _ = m.state.DragMove(pos)
			m.store.MoveNode(m.state.Drag.NodeID, pos)
			return m, nil
		}
		m.state = m.hover(snap, p, onCanvas)

	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.state = m.state.ClickOutside()
		if !onCanvas {
			return m, nil
		}
		if id, ok := render.HitNode(snap, p, m.tolerance(), m.style); ok {
			n, _ := snap.Node(id)
			m.state = m.state.DragStart(id, n.Position)
		}

	case msg.Action == tea.MouseActionRelease && m.state.Dragging():
		d := *m.state.Drag
		var upd interact.PositionUpdate
		m.state, upd = m.state.DragEnd(d.NodeID, d.At.X, d.At.Y)
		m.store.MoveNode(upd.NodeID, graph.Position{X: upd.X, Y: upd.Y})
		return m, m.store.UpdateNodePosition(upd.NodeID, upd.X, upd.Y)

	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonRight:
		if !onCanvas {
			m.state = m.state.ClickOutside()
			return m, nil
		}
		id, ok := render.HitNode(snap, p, m.tolerance(), m.style)
		if !ok {
			m.state = m.state.ClickOutside()
			return m, nil
		}
		n, _ := snap.Node(id)
		m.state = m.state.RightClick(*n, float64(msg.X), float64(msg.Y))
	}
	return m, nil
}

// hover tracks the node or link under the pointer. Nodes take precedence.
func (m editorModel) hover(snap graph.Snapshot, p render.Point, onCanvas bool) interact.State {
	s := m.state.HoverNode("").HoverLink("")
	if !onCanvas {
		return s
	}
	if id, ok := render.HitNode(snap, p, m.tolerance(), m.style); ok {
		return s.HoverNode(id)
	}
	if key, ok := render.HitLink(snap, p, m.tolerance(), m.style); ok {
		return s.HoverLink(key)
	}
	return s
}

// =============================================================================
// View
// =============================================================================

func (m editorModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	cols, rows := m.graphSize()

	cmds := render.Frame(m.store.Snapshot(), render.Hover(m.state.Hover), m.zoom, m.style)
	canvas := term.Rasterize(cmds, cols, rows, m.viewport()).Render(m.cells)

	body := canvas
	if m.panel {
		body = lipgloss.JoinHorizontal(lipgloss.Top, canvas, panelStyle.Height(rows).MaxHeight(rows).Width(panelWidth).Render(m.panelView()))
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.headerView(), body, m.footerView())
}

func (m editorModel) headerView() string {
	st := m.store.Snapshot().Stats()
	parts := []string{
		StyleTitle.Render(appName),
		StyleDim.Render(fmt.Sprintf("%d nodes · %d links", st.Nodes, st.Links)),
	}
	crit := m.filters.Criteria().Trimmed()
	for _, f := range []struct{ key, value string }{{"name", crit.Name}, {"label", crit.Label}, {"type", crit.Type}} {
		if f.value != "" {
			parts = append(parts, StyleDim.Render(f.key+"=")+StyleHighlight.Render(f.value))
		}
	}
	if m.store.Busy() {
		parts = append(parts, m.spinner.View())
	}
	return lipgloss.NewStyle().MaxWidth(m.width).Render(strings.Join(parts, "  "))
}

func (m editorModel) footerView() string {
	var line string
	switch {
	case m.state.Menu != nil:
		line = menuStyle.Render(m.state.Menu.NodeName) + StyleDim.Render("  [s] set as source  [t] set as target  [esc] close")
	case m.formErr != nil:
		line = styleIconError.Render(iconError) + " " + errors.UserMessage(m.formErr)
	case m.store.Err() != nil:
		line = styleIconError.Render(iconError) + " " + errors.UserMessage(m.store.Err())
	case m.status != "":
		line = styleIconSuccess.Render(iconSuccess) + " " + m.status
	default:
		line = StyleDim.Render("/ filter  n node  e edge type  enter create edge  tab panel  q quit")
	}
	return lipgloss.NewStyle().MaxWidth(m.width).Render(line)
}

func (m editorModel) panelView() string {
	var b strings.Builder

	section := func(title string, active bool) {
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		if active {
			b.WriteString(StyleHighlight.Render(iconInfo + " " + title))
		} else {
			b.WriteString(sectionStyle.Render(title))
		}
		b.WriteString("\n")
	}

	section("Filters", m.focus == formFilter)
	for _, in := range m.filterForm {
		b.WriteString(in.View() + "\n")
	}

	section("New node", m.focus == formNode)
	for _, in := range m.nodeForm {
		b.WriteString(in.View() + "\n")
	}

	section("Relationship", m.focus == formEdge)
	b.WriteString(m.edgeTable())
	b.WriteString("\n" + m.edgeForm[0].View())

	if n, ok := m.store.Snapshot().Node(m.state.Hover.Node); ok {
		section("Node", false)
		b.WriteString(StyleValue.Render(n.DisplayName) + "\n")
		b.WriteString(StyleDim.Render(strings.Join(n.Labels, ", ")) + "\n")
		b.WriteString(n.Description())
	}

	if labels := m.store.Labels(); len(labels) > 0 {
		section("Labels", false)
		b.WriteString(StyleDim.Render(strings.Join(labels, " ")))
	}
	if types := m.store.RelationshipTypes(); len(types) > 0 {
		section("Types", false)
		b.WriteString(StyleDim.Render(strings.Join(types, " ")))
	}
	return b.String()
}

// edgeTable shows the pending relationship.
func (m editorModel) edgeTable() string {
	p := m.state.Pending
	name := func(e interact.Endpoint) string {
		if !e.IsSet() {
			return "—"
		}
		return e.Name
	}
	typ := p.Type
	if typ == "" {
		typ = graph.DefaultLinkType
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Width(panelWidth-2).
		Rows(
			[]string{"Source", name(p.Source)},
			[]string{"Target", name(p.Target)},
			[]string{"Type", typ},
		).
		StyleFunc(func(row, col int) lipgloss.Style {
			if col == 0 {
				return lipgloss.NewStyle().Foreground(colorGray)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})
	return t.Render()
}
