// Package modelsはTodoリストとTodoアイテムを定義します。
package models

// TodoList はTodoリストのデータベース構造体を表します。
type TodoList struct {
	ID    int    `json:"id"`    // 主キー (ストアが採番)
	Title string `json:"title"` // リストのタイトル
}

// TodoItem はリストに属するTodoアイテムを表します。
type TodoItem struct {
	ID      int    `json:"id"`
	ListID  int    `json:"list_id"` // todo_list.id への外部キー
	Title   string `json:"title"`
	Checked bool   `json:"checked"` // false -> true にのみ遷移する
}

// CreateTodoList はリスト作成リクエストのボディです。
// bindingタグ: titleは必須 (空文字列もエラー)
type CreateTodoList struct {
	Title string `json:"title" binding:"required"`
}

// ResultResponse はチェック操作の結果を返します。
type ResultResponse struct {
	Success bool `json:"success"`
}

// Status はヘルスチェックのレスポンスです。
type Status struct {
	Status string `json:"status"`
}

// ErrorResponse はエラー時のレスポンスボディです。
type ErrorResponse struct {
	Error string `json:"error"`
}
