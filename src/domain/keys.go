package domain

// Chaves de atributo reservadas pelo sistema.
const (
	KeyUsername   = "username"
	KeyPassword   = "password"
	KeyNickname   = "nickname"
	KeyAvatar     = "avatar"
	KeyEmail      = "email"
	KeyPhone      = "phone"
	KeyInvitedBy  = "invited-by"
	KeyGroupType  = "group_type"
	KeyIsRoot     = "is_root"
	KeyCreateTime = "create_time"

	// KeyStorage marca um ancestral com capacidade de storage; valor "true"
	// é reescrito na leitura para apontar o nó que deve endereçar o storage.
	KeyStorage = "storage"

	// KeyTemplateID liga um nó a um TreeNode de template; bloqueia a remoção
	// do template enquanto a referência existir.
	KeyTemplateID = "templateId"
)
