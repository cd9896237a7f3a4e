package model

// Material artículo escolar — tabla materiales
type Material struct {
	MaterialID             string      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"_id"`
	Nombre                 string      `gorm:"type:varchar(150);not null;uniqueIndex"         json:"nombre"`
	CategoriaID            string      `gorm:"type:uuid;not null"                             json:"categoria"`
	Descripcion            *string     `gorm:"type:text"                                      json:"descripcion,omitempty"`
	Activo                 bool        `gorm:"not null;default:true"                          json:"activo"`
	DisponibleParaDocentes bool        `gorm:"not null;default:true;column:disponible_para_docentes" json:"disponibleParaDocentes"`
	CentrosAsignados       StringArray `gorm:"type:text[];column:centros_asignados"           json:"centrosAsignados"`
	BaseModel

	Categoria *Categoria `gorm:"foreignKey:CategoriaID;references:CategoriaID" json:"categoriaDetalle,omitempty"`
}

// TableName nombre de la tabla
func (Material) TableName() string { return "materiales" }
