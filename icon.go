package cursor

// Icon identifies a named cursor image, following the CSS cursor keywords.
type Icon uint8

const (
	Default Icon = iota
	ContextMenu
	Help
	Pointer
	Progress
	Wait
	Cell
	Crosshair
	Text
	VerticalText
	Alias
	Copy
	Move
	NoDrop
	NotAllowed
	Grab
	Grabbing
	EResize
	NResize
	NeResize
	NwResize
	SResize
	SeResize
	SwResize
	WResize
	EwResize
	NsResize
	NeswResize
	NwseResize
	ColResize
	RowResize
	AllScroll
	ZoomIn
	ZoomOut
	DndAsk
	AllResize

	iconCount
)

type iconInfo struct {
	name string
	alt  []string
}

// icons holds the CSS name and the legacy X11 names themes ship instead.
var icons = [iconCount]iconInfo{
	Default:      {"default", []string{"left_ptr", "arrow", "top_left_arrow", "left_arrow"}},
	ContextMenu:  {"context-menu", nil},
	Help:         {"help", []string{"question_arrow", "whats_this"}},
	Pointer:      {"pointer", []string{"hand2", "hand1", "hand", "pointing_hand"}},
	Progress:     {"progress", []string{"left_ptr_watch", "half-busy"}},
	Wait:         {"wait", []string{"watch"}},
	Cell:         {"cell", []string{"plus"}},
	Crosshair:    {"crosshair", []string{"cross"}},
	Text:         {"text", []string{"xterm", "ibeam"}},
	VerticalText: {"vertical-text", nil},
	Alias:        {"alias", []string{"link"}},
	Copy:         {"copy", nil},
	Move:         {"move", nil},
	NoDrop:       {"no-drop", nil},
	NotAllowed:   {"not-allowed", []string{"crossed_circle"}},
	Grab:         {"grab", []string{"openhand", "fleur"}},
	Grabbing:     {"grabbing", []string{"closedhand"}},
	EResize:      {"e-resize", []string{"right_side"}},
	NResize:      {"n-resize", []string{"top_side"}},
	NeResize:     {"ne-resize", []string{"top_right_corner"}},
	NwResize:     {"nw-resize", []string{"top_left_corner"}},
	SResize:      {"s-resize", []string{"bottom_side"}},
	SeResize:     {"se-resize", []string{"bottom_right_corner"}},
	SwResize:     {"sw-resize", []string{"bottom_left_corner"}},
	WResize:      {"w-resize", []string{"left_side"}},
	EwResize:     {"ew-resize", []string{"sb_h_double_arrow"}},
	NsResize:     {"ns-resize", []string{"sb_v_double_arrow"}},
	NeswResize:   {"nesw-resize", []string{"fd_double_arrow"}},
	NwseResize:   {"nwse-resize", []string{"bd_double_arrow"}},
	ColResize:    {"col-resize", []string{"split_h", "h_double_arrow", "sb_h_double_arrow"}},
	RowResize:    {"row-resize", []string{"split_v", "v_double_arrow", "sb_v_double_arrow"}},
	AllScroll:    {"all-scroll", []string{"fleur"}},
	ZoomIn:       {"zoom-in", nil},
	ZoomOut:      {"zoom-out", nil},
	DndAsk:       {"dnd-ask", []string{"dnd-copy"}},
	AllResize:    {"all-resize", []string{"fleur"}},
}

// Name returns the CSS cursor name, which is also the primary Xcursor file name.
func (i Icon) Name() string {
	if i >= iconCount {
		return icons[Default].name
	}
	return icons[i].name
}

// AltNames returns the legacy file names tried when a theme lacks Name.
func (i Icon) AltNames() []string {
	if i >= iconCount {
		return nil
	}
	return icons[i].alt
}

// Names returns Name followed by AltNames.
func (i Icon) Names() []string {
	return append([]string{i.Name()}, i.AltNames()...)
}

func (i Icon) String() string { return i.Name() }

// ParseIcon returns the icon with the given CSS name.
func ParseIcon(name string) (Icon, bool) {
	for i := range iconCount {
		if icons[i].name == name {
			return i, true
		}
	}
	return Default, false
}
