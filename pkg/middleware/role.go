package middleware

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/alexandrechoske/uniq-adu-portal-sub000/internal/auth"
	"github.com/alexandrechoske/uniq-adu-portal-sub000/pkg/apiErrors"
)

// RoleMiddleware restringe a rota aos perfis informados
func RoleMiddleware(allowedRoles []int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userClaims, ok := ClaimsFromContext(r.Context())
			if !ok {
				logrus.Warning("Tentativa de acesso sem autenticação")
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
				return
			}

			if !userClaims.HasRole(allowedRoles...) {
				logrus.Warningf("Acesso negado para usuário ID=%d, Role=%d", userClaims.UserID, userClaims.UserRoleID)
				apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Você não tem permissão para acessar este recurso", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// AdminOrSupervisor libera administradores e supervisores
func AdminOrSupervisor() func(http.Handler) http.Handler {
	return RoleMiddleware([]int{auth.RoleAdmin, auth.RoleSupervisor})
}

// AllRoles libera qualquer usuário autenticado do portal
func AllRoles() func(http.Handler) http.Handler {
	return RoleMiddleware([]int{auth.RoleAdmin, auth.RoleSupervisor, auth.RoleClient})
}
