package admin

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/shopsync/internal/cache"
	"github.com/shopsync/internal/constants"
	handlershared "github.com/shopsync/internal/http/handlers/shared"
	"github.com/shopsync/internal/http/response"
	"github.com/shopsync/internal/models"

	"github.com/gin-gonic/gin"
)

type authzPolicyPayload struct {
	Role   string `json:"role" binding:"required"`
	Object string `json:"object" binding:"required"`
	Action string `json:"action" binding:"required"`
}

type authzSetUserRolesPayload struct {
	Roles []string `json:"roles"`
}

// ListAuthzRoles 获取角色列表
func (h *Handler) ListAuthzRoles(c *gin.Context) {
	roles, err := h.AuthzService.ListRoles()
	if err != nil {
		respondError(c, response.CodeInternal, "error.authz_failed", err)
		return
	}
	response.Success(c, roles)
}

// GetAuthzRolePolicies 获取角色策略
func (h *Handler) GetAuthzRolePolicies(c *gin.Context) {
	role := decodeRoleParam(c.Param("role"))
	if role == "" {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	policies, err := h.AuthzService.GetRolePolicies(role)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	response.Success(c, policies)
}

// GrantAuthzPolicy 授予角色策略
func (h *Handler) GrantAuthzPolicy(c *gin.Context) {
	var req authzPolicyPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		handlershared.RespondBindError(c, err)
		return
	}
	if err := h.AuthzService.GrantRolePolicy(req.Role, req.Object, req.Action); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	h.recordAuthzAudit(c, "policy_grant", models.JSON{
		"role":   req.Role,
		"object": req.Object,
		"action": req.Action,
	})
	response.Success(c, nil)
}

// GetUserRoles 获取用户附加角色
func (h *Handler) GetUserRoles(c *gin.Context) {
	userID, ok := parseUserIDParam(c)
	if !ok {
		return
	}
	roles, err := h.AuthzService.GetUserRoles(userID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.authz_failed", err)
		return
	}
	response.Success(c, gin.H{"user_id": userID, "roles": roles})
}

// SetUserRoles 覆盖用户附加角色
func (h *Handler) SetUserRoles(c *gin.Context) {
	userID, ok := parseUserIDParam(c)
	if !ok {
		return
	}
	var req authzSetUserRolesPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		handlershared.RespondBindError(c, err)
		return
	}
	user, err := h.UserRepo.GetByID(userID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.authz_failed", err)
		return
	}
	if user == nil {
		respondError(c, response.CodeNotFound, "error.user_not_found", nil)
		return
	}
	if err := h.AuthzService.SetUserRoles(userID, req.Roles); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	// 角色变更后让 JWT 中间件下次请求回源数据库
	if err := cache.DelUserAuthState(c.Request.Context(), userID); err != nil {
		requestLog(c).Warnw("admin_user_auth_state_invalidate_failed", "target_user_id", userID, "error", err)
	}
	h.recordAuthzAudit(c, "user_roles_set", models.JSON{
		"target_user_id": userID,
		"roles":          req.Roles,
	})
	response.Success(c, nil)
}

func (h *Handler) recordAuthzAudit(c *gin.Context, action string, detail models.JSON) {
	operatorID, _ := c.Get(handlershared.ContextKeyUserID)
	detail["action"] = action
	detail["operator_user_id"] = operatorID
	detail["request_id"] = currentRequestID(c)
	h.SystemLogService.Record(constants.LogLevelInfo, "authz "+action, constants.SystemLogContextAuthz, detail)
	requestLog(c).Infow("admin_authz_"+action, "operator_user_id", operatorID)
}

func decodeRoleParam(raw string) string {
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return strings.TrimSpace(raw)
	}
	return strings.TrimSpace(decoded)
}

func parseUserIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.user_id_invalid", nil)
		return 0, false
	}
	return uint(id), true
}
