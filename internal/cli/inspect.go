package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	dsio "github.com/matzehuels/drawspec/pkg/io"
	"github.com/matzehuels/drawspec/pkg/pipeline"
	"github.com/matzehuels/drawspec/pkg/scene"
	"github.com/matzehuels/drawspec/pkg/style"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
	headerStyle  = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	detailStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(0, 1)
)

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		flags compileFlags
		plain bool
	)

	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Browse the compiled op stream",
		Long: `Browse the compiled op stream of a document.

The argument is a diagram document or a compiled <name>.scene.json. Without
--plain an interactive browser opens: arrows move, enter shows the selected
op in full, q quits.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := flags.options(cmd, c.Config)
			opts.Logger = loggerFromContext(cmd.Context())
			s, err := c.loadScene(cmd, args[0], opts)
			if err != nil {
				return err
			}
			if plain {
				fmt.Fprintln(cmd.OutOrStdout(), renderOpsTable(opRows(s), -1, 0, len(s.Ops)))
				return nil
			}
			_, err = tea.NewProgram(newOpsModel(s), tea.WithContext(cmd.Context()), tea.WithAltScreen()).Run()
			return err
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&plain, "plain", false, "print a table instead of the interactive browser")

	return cmd
}

func (c *CLI) loadScene(cmd *cobra.Command, path string, opts pipeline.Options) (*scene.Scene, error) {
	if strings.HasSuffix(path, sceneExt) {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return dsio.ReadScene(f)
	}

	data, format, err := readInput(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	opts.DocFormat = format
	runner, err := c.newRunner(cmd.Context(), opts.NoCache)
	if err != nil {
		return nil, err
	}
	defer runner.Close()
	return runner.Compile(cmd.Context(), data, opts)
}

// =============================================================================
// Op rows
// =============================================================================

type opRow struct {
	op      scene.Op
	kind    string
	target  string
	summary string
}

func opRows(s *scene.Scene) []opRow {
	rows := make([]opRow, len(s.Ops))
	for i, op := range s.Ops {
		target, summary := describeOp(op)
		rows[i] = opRow{op: op, kind: string(op.Kind()), target: target, summary: summary}
	}
	return rows
}

// describeOp returns the op's target and a one-line summary.
func describeOp(op scene.Op) (string, string) {
	switch o := op.(type) {
	case scene.CreateRectangle:
		s := fmt.Sprintf("%.3g,%.3g %.3gx%.3g in", o.Rect.Min.X, o.Rect.Min.Y, o.Rect.Width(), o.Rect.Height())
		if o.RotationDeg != 0 {
			s += fmt.Sprintf(" rot %.1f°", o.RotationDeg)
		}
		return o.ID, s
	case scene.CreatePolyline:
		return o.ID, fmt.Sprintf("%d points", len(o.Points))
	case scene.SetTextLabel:
		s := fmt.Sprintf("%q %s %gpt", o.Text, o.Color.Hex(), o.SizePt)
		if o.Transparency == style.Invisible {
			s += " hidden"
		}
		return o.Target, s
	case scene.SetFillStyle:
		if o.Fill == scene.FillGradient {
			stops := make([]string, len(o.Stops))
			for i, st := range o.Stops {
				stops[i] = st.Color.Hex()
			}
			return o.Target, "gradient " + strings.Join(stops, " → ")
		}
		return o.Target, "solid " + o.Color.Hex()
	case scene.SetStrokeStyle:
		s := fmt.Sprintf("%s %gpt %s", o.Color.Hex(), o.WeightPt, style.LinePattern(o.Pattern))
		if o.EndArrow != 0 {
			s += " " + style.Arrow(o.EndArrow).String() + " end"
		}
		return o.Target, s
	case scene.SetZOrder:
		return o.Target, fmt.Sprintf("rank %d", o.Rank)
	case scene.ResizeCanvas:
		return "", fmt.Sprintf("%.3gx%.3g in origin %.3g,%.3g", o.Width, o.Height, o.Origin.X, o.Origin.Y)
	}
	return "", ""
}

// renderOpsTable renders rows [offset, end) with cursor highlighted.
// A negative cursor highlights nothing.
func renderOpsTable(rows []opRow, cursor, offset, end int) string {
	if end > len(rows) {
		end = len(rows)
	}
	data := make([][]string, 0, end-offset)
	for i := offset; i < end; i++ {
		r := rows[i]
		data = append(data, []string{fmt.Sprint(i), r.kind, r.target, r.summary})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Op", "Target", "Details").
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if offset+row == cursor {
				return base.Bold(true).Foreground(colorCyan)
			}
			switch col {
			case 0:
				return base.Foreground(colorDim)
			case 1:
				return base.Inherit(styleKind)
			}
			return base
		}).
		Render()
}

// =============================================================================
// opsModel - Interactive op browser
// =============================================================================

type opsModel struct {
	scene  *scene.Scene
	rows   []opRow
	cursor int
	offset int
	height int
	detail bool
}

func newOpsModel(s *scene.Scene) opsModel {
	return opsModel{scene: s, rows: opRows(s), height: 15}
}

func (m opsModel) Init() tea.Cmd {
	return nil
}

func (m opsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.move(-1)
		case "down", "j":
			m.move(1)
		case "pgup":
			m.move(-m.height)
		case "pgdown":
			m.move(m.height)
		case "home", "g":
			m.move(-len(m.rows))
		case "end", "G":
			m.move(len(m.rows))
		case "enter", " ":
			m.detail = !m.detail
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 10
		if m.height < 5 {
			m.height = 5
		}
		m.move(0)
	}
	return m, nil
}

// move shifts the cursor by delta and keeps it inside the window.
func (m *opsModel) move(delta int) {
	if len(m.rows) == 0 {
		return
	}
	m.cursor = max(0, min(len(m.rows)-1, m.cursor+delta))
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
}

func (m opsModel) View() string {
	var b strings.Builder

	w, h := m.scene.Canvas()
	title := m.scene.Page.Name
	if title == "" {
		title = "scene"
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  %.3gx%.3g in · %d ops · %d warnings", w, h, len(m.rows), len(m.scene.Warnings))))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ details  q quit"))
	b.WriteString("\n\n")

	if len(m.rows) == 0 {
		b.WriteString(listDimStyle.Render("  no operations"))
		return b.String()
	}

	b.WriteString(renderOpsTable(m.rows, m.cursor, m.offset, m.offset+m.height))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.rows))))

	if m.detail {
		data, err := json.MarshalIndent(m.rows[m.cursor].op, "", "  ")
		if err != nil {
			data = []byte(err.Error())
		}
		b.WriteString("\n")
		b.WriteString(detailStyle.Render(styleKind.Render(m.rows[m.cursor].kind) + "\n" + string(data)))
	}

	return b.String()
}
