package cursor

import (
	"golang.org/x/text/cases"
)

type aliasEntry struct {
	names []string
	icon  Icon
}

// aliasTable maps vector cursor ids to icons. It is applied in order and a
// later entry overrides an earlier one for the same name.
var aliasTable = []aliasEntry{
	{[]string{"default", "left_ptr"}, Default},
	{[]string{"move", "fleur", "move"}, AllScroll},
	{[]string{"text", "xterm", "ibeam"}, Text},
	{[]string{"wait", "watch"}, Wait},
	{[]string{"progress", "left_ptr_watch"}, Progress},
	{[]string{"crosshair", "cross_reverse"}, Crosshair},
	{[]string{"nwse-resize", "top_left_corner"}, NwResize},
	{[]string{"pointer", "hand", "hand1", "hand2"}, Pointer},
	{[]string{"grab", "openhand"}, Grab},
	{[]string{"grabbing", "grabbing", "closedhand"}, Grabbing},
	{[]string{"not-allowed", "circle", "dnd-none"}, NotAllowed},
	{[]string{"help", "question_arrow"}, Help},
	{[]string{"copy"}, Copy},
	{[]string{"alias"}, Alias},
	{[]string{"cell"}, Cell},
	{[]string{"vertical-text"}, VerticalText},
	{[]string{"context-menu"}, ContextMenu},
	{[]string{"no-drop"}, NoDrop},
	{[]string{"col-resize", "sb_h_double_arrow"}, WResize},
	{[]string{"row-resize", "sb_v_double_arrow"}, NResize},
	{[]string{"ew-resize"}, WResize},
	{[]string{"ns-resize"}, NResize},
	{[]string{"nesw-resize", "top_right_corner"}, NeResize},
	{[]string{"swne-resize", "bottom_left_corner"}, SwResize},
	{[]string{"sene-resize", "bottom_right_corner"}, SeResize},
	{[]string{"zoom-in"}, ZoomIn},
	{[]string{"zoom-out"}, ZoomOut},
}

var aliases = buildAliases(aliasTable)

func buildAliases(table []aliasEntry) map[string]Icon {
	m := make(map[string]Icon)
	for _, e := range table {
		for _, n := range e.names {
			m[n] = e.icon
		}
	}
	return m
}

// IconForID returns the icon a vector cursor id stands for. Ids are
// compared case-insensitively.
func IconForID(id string) (Icon, bool) {
	icon, ok := aliases[cases.Fold().String(id)]
	return icon, ok
}

// iconMapping maps every icon some id in ids stands for to that id.
// ids are visited in order, so for two ids naming one icon the later wins.
func iconMapping(ids []string) map[Icon]string {
	m := make(map[Icon]string)
	for _, id := range ids {
		if icon, ok := IconForID(id); ok {
			m[icon] = id
		}
	}
	return m
}
