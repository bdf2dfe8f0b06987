package i18n

var messages = map[string]map[string]string{
	LocaleJA: {
		"error.bad_request":                 "リクエストが正しくありません",
		"error.unauthorized":                "ログインしてください",
		"error.forbidden":                   "権限がありません",
		"error.not_found":                   "見つかりません",
		"error.internal":                    "サーバーエラーが発生しました",
		"error.too_many_requests":           "リクエストが多すぎます。しばらくしてからお試しください",
		"error.login_too_many":              "ログイン試行回数が多すぎます。%d秒後にお試しください",
		"error.token_invalid":               "ログイン情報が無効です。再度ログインしてください",
		"error.token_revoked":               "ログイン情報の有効期限が切れました。再度ログインしてください",
		"error.rate_limit_unavailable":      "一時的に利用できません",
		"error.invalid_credentials":         "メールアドレスまたはパスワードが正しくありません",
		"error.email_exists":                "このメールアドレスは既に登録されています",
		"error.invalid_email":               "メールアドレスの形式が正しくありません",
		"error.user_disabled":               "このアカウントは利用できません",
		"error.password_min_length":         "パスワードは%d文字以上で入力してください",
		"error.password_require_upper":      "パスワードに大文字を含めてください",
		"error.password_require_lower":      "パスワードに小文字を含めてください",
		"error.password_require_number":     "パスワードに数字を含めてください",
		"error.password_require_special":    "パスワードに記号を含めてください",
		"error.product_not_found":           "商品が見つかりません",
		"error.product_invalid":             "商品情報が正しくありません",
		"error.product_title_required":      "商品名を入力してください",
		"error.product_price_invalid":       "価格は0以上で入力してください",
		"error.product_category_invalid":    "カテゴリが正しくありません",
		"error.cart_item_invalid":           "カートの内容が正しくありません",
		"error.cart_empty":                  "カートが空です",
		"error.guest_cart_invalid":          "ゲストカートIDが正しくありません",
		"error.checkout_terms_not_accepted": "利用規約に同意してください",
		"error.checkout_address_incomplete": "必須項目を入力してください",
		"error.checkout_step_invalid":       "現在の手順ではこの操作はできません",
		"error.order_not_found":             "注文が見つかりません",
		"error.order_create_failed":         "注文処理に失敗しました",
		"error.order_status_invalid":        "注文ステータスを変更できません",
		"error.profile_nickname_required":   "ニックネームを入力してください",
		"error.notification_not_found":      "お知らせが見つかりません",
		"error.notification_title_required": "タイトルを入力してください",
		"error.notification_type_invalid":   "お知らせの種類が正しくありません",
		"error.email_request_invalid":       "メール送信内容が正しくありません",
		"error.email_send_failed":           "メールの送信に失敗しました",
		"error.email_not_configured":        "メール送信が設定されていません",
		"email.order.subject":               "【Pianao教室】ご注文ありがとうございます",
		"email.order.heading":               "ご注文ありがとうございます",
		"email.order.greeting":              "%s 様",
		"email.order.intro":                 "以下の内容でご注文を承りました。",
		"email.order.col_title":             "商品名",
		"email.order.col_quantity":          "数量",
		"email.order.col_price":             "単価",
		"email.order.total":                 "合計",
		"email.order.bank_title":            "お振込み先",
		"email.order.fee_note":              "※お振込み手数料はお客様負担となります。",
		"email.order.footer":                "このメールは送信専用です。",
		"order.status.pending_payment":      "お支払い待ち",
		"order.status.paid":                 "お支払い済み",
		"order.status.completed":            "完了",
		"order.status.canceled":             "キャンセル",
	},
	LocaleEN: {
		"error.bad_request":                 "Invalid request",
		"error.unauthorized":                "Please sign in",
		"error.forbidden":                   "Permission denied",
		"error.not_found":                   "Not found",
		"error.internal":                    "Internal server error",
		"error.too_many_requests":           "Too many requests, please try again later",
		"error.login_too_many":              "Too many login attempts, please retry in %d seconds",
		"error.token_invalid":               "Invalid session, please sign in again",
		"error.token_revoked":               "Session expired, please sign in again",
		"error.rate_limit_unavailable":      "Service temporarily unavailable",
		"error.invalid_credentials":         "Invalid email or password",
		"error.email_exists":                "This email is already registered",
		"error.invalid_email":               "Invalid email address",
		"error.user_disabled":               "This account is disabled",
		"error.password_min_length":         "Password must be at least %d characters",
		"error.password_require_upper":      "Password must contain an uppercase letter",
		"error.password_require_lower":      "Password must contain a lowercase letter",
		"error.password_require_number":     "Password must contain a number",
		"error.password_require_special":    "Password must contain a symbol",
		"error.product_not_found":           "Product not found",
		"error.product_invalid":             "Invalid product data",
		"error.product_title_required":      "Title is required",
		"error.product_price_invalid":       "Price must not be negative",
		"error.product_category_invalid":    "Invalid category",
		"error.cart_item_invalid":           "Invalid cart item",
		"error.cart_empty":                  "Your cart is empty",
		"error.guest_cart_invalid":          "Invalid guest cart id",
		"error.checkout_terms_not_accepted": "Please accept the terms of service",
		"error.checkout_address_incomplete": "Please fill in all required fields",
		"error.checkout_step_invalid":       "This action is not available at the current step",
		"error.order_not_found":             "Order not found",
		"error.order_create_failed":         "Failed to place the order",
		"error.order_status_invalid":        "Order status cannot be changed",
		"error.profile_nickname_required":   "Nickname is required",
		"error.notification_not_found":      "Notification not found",
		"error.notification_title_required": "Title is required",
		"error.notification_type_invalid":   "Invalid notification type",
		"error.email_request_invalid":       "Invalid email request",
		"error.email_send_failed":           "Failed to send email",
		"error.email_not_configured":        "Email delivery is not configured",
		"email.order.subject":               "Thank you for your order",
		"email.order.heading":               "Thank you for your order",
		"email.order.greeting":              "Dear %s,",
		"email.order.intro":                 "We have received your order as follows.",
		"email.order.col_title":             "Item",
		"email.order.col_quantity":          "Qty",
		"email.order.col_price":             "Unit price",
		"email.order.total":                 "Total",
		"email.order.bank_title":            "Bank transfer details",
		"email.order.fee_note":              "Transfer fees are borne by the customer.",
		"email.order.footer":                "This is a send-only address.",
		"order.status.pending_payment":      "Awaiting payment",
		"order.status.paid":                 "Paid",
		"order.status.completed":            "Completed",
		"order.status.canceled":             "Canceled",
	},
	LocaleZH: {
		"error.bad_request":                 "请求参数错误",
		"error.unauthorized":                "请先登录",
		"error.forbidden":                   "无权限",
		"error.not_found":                   "资源不存在",
		"error.internal":                    "服务器内部错误",
		"error.too_many_requests":           "请求过于频繁，请稍后再试",
		"error.login_too_many":              "登录尝试过多，请 %d 秒后重试",
		"error.token_invalid":               "登录状态无效，请重新登录",
		"error.token_revoked":               "登录已失效，请重新登录",
		"error.rate_limit_unavailable":      "服务暂不可用",
		"error.invalid_credentials":         "邮箱或密码错误",
		"error.email_exists":                "邮箱已被注册",
		"error.invalid_email":               "邮箱格式不正确",
		"error.user_disabled":               "账号已被禁用",
		"error.password_min_length":         "密码长度至少 %d 位",
		"error.cart_empty":                  "购物车为空",
		"error.checkout_terms_not_accepted": "请先同意服务条款",
		"error.checkout_address_incomplete": "请填写必填项",
		"error.checkout_step_invalid":       "当前步骤不允许该操作",
		"error.order_not_found":             "订单不存在",
		"error.order_create_failed":         "下单失败",
		"error.product_not_found":           "商品不存在",
	},
}
