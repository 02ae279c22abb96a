package layout

func init() {
	Register(Layout{ID: "classic", Title: "Classic garden (3x3)", Cols: 3, Rows: 3})
	Register(Layout{ID: "wide", Title: "Wide garden (5x2)", Cols: 5, Rows: 2})
	Register(Layout{ID: "big", Title: "Big garden (4x4)", Cols: 4, Rows: 4})
}
