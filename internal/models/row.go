package models

// RowScanner は *sql.Row と *sql.Rows の共通インターフェースです。
type RowScanner interface {
	Scan(dest ...any) error
}

// ScanTodoList は id, title の行をTodoListに変換します。
func ScanTodoList(row RowScanner) (TodoList, error) {
	var l TodoList
	err := row.Scan(&l.ID, &l.Title)
	return l, err
}

// ScanTodoItem は id, list_id, title, checked の行をTodoItemに変換します。
func ScanTodoItem(row RowScanner) (TodoItem, error) {
	var i TodoItem
	err := row.Scan(&i.ID, &i.ListID, &i.Title, &i.Checked)
	return i, err
}
