package i18n

import "github.com/CoderFake/ragchat"

var messages = map[ragchat.Language]map[string]string{
	ragchat.LanguageEnglish: {
		"app.title":              "RAG Chat",
		"login.title":            "Sign in",
		"register.title":         "Create account",
		"login.username":         "Username",
		"login.password":         "Password",
		"login.name":             "Full name (optional)",
		"login.email":            "Email (optional)",
		"login.hint":             "enter: sign in · tab: next field · ctrl+r: register · esc: continue as guest",
		"register.hint":          "enter: create account · tab: next field · ctrl+r: back to sign in",
		"register.success":       "Account %s created, please sign in.",
		"login.welcome":          "Signed in as %s.",
		"chat.placeholder":       "Ask a question... (/help for commands)",
		"chat.thinking":          "Thinking...",
		"chat.welcome":           "Ask anything about the indexed documents.",
		"chat.new_session":       "Started a new conversation.",
		"chat.loaded":            "Loaded %d messages.",
		"chat.hint":              "enter: send · esc: skip animation · tab: toggle sources · pgup/pgdn: scroll · ctrl+c: quit",
		"sources.title":          "Sources (%d)",
		"sources.match":          "%d%% match",
		"feedback.sent":          "Thanks for your feedback.",
		"feedback.none":          "No response to rate yet.",
		"history.title":          "Conversation history",
		"history.empty":          "No saved conversations.",
		"history.untitled":       "New conversation",
		"history.hint":           "enter: open · d: delete · esc: back",
		"history.col.title":      "Title",
		"history.col.messages":   "Messages",
		"history.col.updated":    "Updated",
		"docs.title":             "Documents (page %d of %d, %d total)",
		"docs.hint":              "n/p: page · r: refresh · esc: back",
		"docs.col.id":            "ID",
		"docs.col.title":         "Title",
		"docs.col.type":          "Type",
		"docs.col.category":      "Category",
		"docs.col.created":       "Created",
		"docs.uploaded":          "Uploaded %s (%d chunks).",
		"docs.deleted":           "Deleted document %s.",
		"docs.reindexed":         "Reindex complete.",
		"settings.title":         "Settings",
		"settings.hint":          "r: refresh · esc: back · /set <field> <value> in the chat changes a value",
		"settings.updated":       "Settings updated.",
		"settings.chunk_size":    "Chunk size",
		"settings.chunk_overlap": "Chunk overlap",
		"settings.embedding":     "Embedding model",
		"settings.provider":      "LLM provider",
		"settings.languages":     "Languages",
		"error.admin":            "This command requires an admin account.",
		"error.unknown_command":  "Unknown command %s. Type /help.",
		"error.usage":            "Usage: %s",
		"error.session_expired":  "Session expired, please sign in again.",
		"theme.changed":          "Theme set to %s.",
		"lang.changed":           "Language set to English.",
		"logout.done":            "Signed out.",
		"status.guest":           "guest",
		"help": `Commands:
  /new                      start a new conversation
  /history                  browse saved conversations
  /up, /down                rate the last answer
  /comment <text>           comment on the last answer
  /theme [light|dark]       switch colour theme
  /lang [en|vi]             switch language
  /docs [page]              list documents (admin)
  /upload <path> [category] upload a document (admin)
  /delete <id>              delete a document (admin)
  /reindex                  rebuild the index (admin)
  /settings                 show indexing settings (admin)
  /set <field> <value>      change a setting (admin)
  /logout                   sign out
  /help                     show this help`,
	},
	ragchat.LanguageVietnamese: {
		"app.title":              "Trò chuyện RAG",
		"login.title":            "Đăng nhập",
		"register.title":         "Tạo tài khoản",
		"login.username":         "Tên đăng nhập",
		"login.password":         "Mật khẩu",
		"login.name":             "Họ tên (không bắt buộc)",
		"login.email":            "Email (không bắt buộc)",
		"login.hint":             "enter: đăng nhập · tab: ô tiếp theo · ctrl+r: đăng ký · esc: dùng với tư cách khách",
		"register.hint":          "enter: tạo tài khoản · tab: ô tiếp theo · ctrl+r: quay lại đăng nhập",
		"register.success":       "Đã tạo tài khoản %s, vui lòng đăng nhập.",
		"login.welcome":          "Đã đăng nhập với tên %s.",
		"chat.placeholder":       "Nhập câu hỏi... (/help để xem lệnh)",
		"chat.thinking":          "Đang suy nghĩ...",
		"chat.welcome":           "Hãy hỏi bất cứ điều gì về tài liệu đã được lập chỉ mục.",
		"chat.new_session":       "Đã bắt đầu cuộc trò chuyện mới.",
		"chat.loaded":            "Đã tải %d tin nhắn.",
		"chat.hint":              "enter: gửi · esc: bỏ qua hiệu ứng · tab: ẩn/hiện nguồn · pgup/pgdn: cuộn · ctrl+c: thoát",
		"sources.title":          "Nguồn tham khảo (%d)",
		"sources.match":          "khớp %d%%",
		"feedback.sent":          "Cảm ơn phản hồi của bạn.",
		"feedback.none":          "Chưa có câu trả lời để đánh giá.",
		"history.title":          "Lịch sử trò chuyện",
		"history.empty":          "Chưa có cuộc trò chuyện nào được lưu.",
		"history.untitled":       "Cuộc trò chuyện mới",
		"history.hint":           "enter: mở · d: xóa · esc: quay lại",
		"history.col.title":      "Tiêu đề",
		"history.col.messages":   "Tin nhắn",
		"history.col.updated":    "Cập nhật",
		"docs.title":             "Tài liệu (trang %d/%d, tổng %d)",
		"docs.hint":              "n/p: trang · r: tải lại · esc: quay lại",
		"docs.col.id":            "ID",
		"docs.col.title":         "Tiêu đề",
		"docs.col.type":          "Loại",
		"docs.col.category":      "Danh mục",
		"docs.col.created":       "Ngày tạo",
		"docs.uploaded":          "Đã tải lên %s (%d đoạn).",
		"docs.deleted":           "Đã xóa tài liệu %s.",
		"docs.reindexed":         "Đã lập chỉ mục lại.",
		"settings.title":         "Cài đặt",
		"settings.hint":          "r: tải lại · esc: quay lại · dùng /set <trường> <giá trị> trong khung chat để thay đổi",
		"settings.updated":       "Đã cập nhật cài đặt.",
		"settings.chunk_size":    "Kích thước đoạn",
		"settings.chunk_overlap": "Độ chồng lấp",
		"settings.embedding":     "Mô hình embedding",
		"settings.provider":      "Nhà cung cấp LLM",
		"settings.languages":     "Ngôn ngữ",
		"error.admin":            "Lệnh này yêu cầu tài khoản quản trị.",
		"error.unknown_command":  "Không rõ lệnh %s. Gõ /help.",
		"error.usage":            "Cách dùng: %s",
		"error.session_expired":  "Phiên đăng nhập đã hết hạn, vui lòng đăng nhập lại.",
		"theme.changed":          "Đã chuyển giao diện sang %s.",
		"lang.changed":           "Đã chuyển sang tiếng Việt.",
		"logout.done":            "Đã đăng xuất.",
		"status.guest":           "khách",
		"help": `Lệnh:
  /new                      bắt đầu cuộc trò chuyện mới
  /history                  xem các cuộc trò chuyện đã lưu
  /up, /down                đánh giá câu trả lời gần nhất
  /comment <nội dung>       bình luận câu trả lời gần nhất
  /theme [light|dark]       đổi giao diện
  /lang [en|vi]             đổi ngôn ngữ
  /docs [trang]             danh sách tài liệu (quản trị)
  /upload <đường dẫn> [danh mục] tải tài liệu lên (quản trị)
  /delete <id>              xóa tài liệu (quản trị)
  /reindex                  lập chỉ mục lại (quản trị)
  /settings                 xem cài đặt (quản trị)
  /set <trường> <giá trị>   thay đổi cài đặt (quản trị)
  /logout                   đăng xuất
  /help                     xem trợ giúp`,
	},
}
