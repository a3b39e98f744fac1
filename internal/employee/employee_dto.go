package employee

type CreateEmployeeRequest struct {
	Codigo            string  `json:"codigo" binding:"required"`
	Nome              string  `json:"nome" binding:"required"`
	Salario           string  `json:"salario" binding:"required"`
	HorarioTrabalhoID *string `json:"horario_trabalho_id"`
}

type UpdateEmployeeRequest struct {
	Nome              *string `json:"nome"`
	Salario           *string `json:"salario"`
	HorarioTrabalhoID *string `json:"horario_trabalho_id"`
	Ativo             *bool   `json:"ativo"`
}

type AddPhotoRequest struct {
	ConteudoBase64 string `json:"conteudo_base64" binding:"required"`
	Descricao      string `json:"descricao"`
}

type EmployeeResponse struct {
	ID                string  `json:"id"`
	Codigo            string  `json:"codigo"`
	Nome              string  `json:"nome"`
	Salario           string  `json:"salario"`
	HorarioTrabalhoID *string `json:"horario_trabalho_id,omitempty"`
	Ativo             bool    `json:"ativo"`
}
