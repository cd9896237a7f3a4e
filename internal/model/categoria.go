package model

// Categoria agrupación de materiales — tabla categorias
type Categoria struct {
	CategoriaID string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"_id"`
	Nombre      string  `gorm:"type:varchar(100);not null;uniqueIndex"         json:"nombre"`
	Descripcion *string `gorm:"type:text"                                      json:"descripcion,omitempty"`
	Activo      bool    `gorm:"not null;default:true"                          json:"activo"`
	BaseModel
}

// TableName nombre de la tabla
func (Categoria) TableName() string { return "categorias" }
