package i18n

var messages = map[string]map[string]string{
	LocaleEnUS: {
		"error.bad_request":               "Invalid request parameters",
		"error.validation_failed":         "Validation failed",
		"error.unauthorized":              "Unauthorized",
		"error.forbidden":                 "Forbidden",
		"error.not_found":                 "Resource not found",
		"error.internal":                  "Internal server error",
		"error.auth_header_missing":       "Authorization header is missing",
		"error.auth_header_invalid":       "Authorization header format is invalid",
		"error.token_invalid":             "Token is invalid or expired",
		"error.jwt_secret_missing":        "JWT secret is not configured",
		"error.user_disabled":             "User is disabled",
		"error.user_not_found":            "User not found",
		"error.user_id_invalid":           "User id is invalid",
		"error.user_id_type_invalid":      "User id type is invalid",
		"error.login_too_many":            "Too many login attempts, retry in %d seconds",
		"error.register_too_many":         "Too many registrations, retry in %d seconds",
		"error.rate_limited":              "Too many requests, retry in %d seconds",
		"error.rate_limit_unavailable":    "Rate limiter unavailable",
		"error.email_exists":              "Email is already registered",
		"error.email_invalid":             "Email is invalid",
		"error.invalid_credentials":       "Invalid email or password",
		"error.register_failed":           "Registration failed",
		"error.login_failed":              "Login failed",
		"error.password_min_length":       "Password must be at least %d characters",
		"error.password_max_length":       "Password must be at most %d characters",
		"error.password_require_upper":    "Password must contain an uppercase letter",
		"error.password_require_lower":    "Password must contain a lowercase letter",
		"error.password_require_number":   "Password must contain a number",
		"error.password_require_special":  "Password must contain a special character",
		"error.product_not_found":         "Product not found",
		"error.product_id_invalid":        "Product id is invalid",
		"error.product_query_invalid":     "Product query is invalid",
		"error.product_fetch_failed":      "Failed to fetch products",
		"error.category_not_found":        "Category not found",
		"error.category_fetch_failed":     "Failed to fetch categories",
		"error.cart_not_found":            "Cart not found",
		"error.cart_item_not_found":       "Cart item not found",
		"error.cart_item_id_invalid":      "Cart item id is invalid",
		"error.quantity_invalid":          "Quantity must be a positive integer",
		"error.insufficient_stock":        "Insufficient stock",
		"error.cart_fetch_failed":         "Failed to fetch cart",
		"error.cart_update_failed":        "Failed to update cart",
		"error.sync_in_progress":          "A synchronization is already in progress",
		"error.sync_failed":               "Synchronization failed",
		"error.upstream_unavailable":      "External catalog is unavailable",
		"error.queue_unavailable":         "Task queue is unavailable",
		"error.task_status_failed":        "Failed to fetch task status",
		"error.system_log_fetch_failed":   "Failed to fetch system logs",
		"error.authz_failed":              "Failed to process permissions",
		"error.system_log_cleanup_failed": "Failed to clean up system logs",
		"message.sync_in_progress":        "Synchronization already in progress",
		"message.sync_completed":          "Synchronization completed",
		"message.sync_queued":             "Synchronization queued",
		"message.cart_cleared":            "Cart cleared",
	},
	LocaleEsMX: {
		"error.bad_request":             "Parámetros de solicitud inválidos",
		"error.validation_failed":       "Error de validación",
		"error.unauthorized":            "No autorizado",
		"error.forbidden":               "Acceso denegado",
		"error.not_found":               "Recurso no encontrado",
		"error.internal":                "Error interno del servidor",
		"error.auth_header_missing":     "Falta el encabezado de autorización",
		"error.auth_header_invalid":     "Formato de autorización inválido",
		"error.token_invalid":           "Token inválido o expirado",
		"error.user_disabled":           "Usuario inactivo",
		"error.user_not_found":          "Usuario no encontrado",
		"error.login_too_many":          "Demasiados intentos, reintenta en %d segundos",
		"error.register_too_many":       "Demasiados registros, reintenta en %d segundos",
		"error.rate_limited":            "Demasiadas solicitudes, reintenta en %d segundos",
		"error.email_exists":            "El email ya está registrado",
		"error.invalid_credentials":     "Credenciales inválidas",
		"error.password_min_length":     "La contraseña debe tener al menos %d caracteres",
		"error.password_max_length":     "La contraseña no puede tener más de %d caracteres",
		"error.password_require_upper":  "La contraseña debe contener una mayúscula",
		"error.password_require_lower":  "La contraseña debe contener una minúscula",
		"error.password_require_number": "La contraseña debe contener un número",
		"error.product_not_found":       "Producto no encontrado",
		"error.category_not_found":      "Categoría no encontrada",
		"error.cart_not_found":          "Carrito no encontrado",
		"error.cart_item_not_found":     "Item del carrito no encontrado",
		"error.quantity_invalid":        "La cantidad debe ser un entero positivo",
		"error.insufficient_stock":      "Stock insuficiente",
		"error.sync_in_progress":        "Ya hay una sincronización en curso",
		"error.upstream_unavailable":    "El catálogo externo no está disponible",
		"message.sync_in_progress":      "Sincronización ya en progreso",
		"message.sync_completed":        "Sincronización completada",
		"message.sync_queued":           "Sincronización encolada",
		"message.cart_cleared":          "Carrito vaciado",
	},
	LocaleZhCN: {
		"error.bad_request":         "请求参数错误",
		"error.validation_failed":   "参数校验失败",
		"error.unauthorized":        "未授权",
		"error.forbidden":           "无权限",
		"error.not_found":           "资源不存在",
		"error.internal":            "服务器内部错误",
		"error.token_invalid":       "Token 无效或已过期",
		"error.email_exists":        "邮箱已注册",
		"error.invalid_credentials": "邮箱或密码错误",
		"error.product_not_found":   "商品不存在",
		"error.category_not_found":  "分类不存在",
		"error.cart_not_found":      "购物车不存在",
		"error.cart_item_not_found": "购物车项不存在",
		"error.quantity_invalid":    "数量必须为正整数",
		"error.insufficient_stock":  "库存不足",
		"error.sync_in_progress":    "同步任务正在执行",
		"message.sync_in_progress":  "同步任务正在执行",
		"message.sync_completed":    "同步完成",
		"message.cart_cleared":      "购物车已清空",
	},
}
