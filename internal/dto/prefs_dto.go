package dto

type GuardarTemaRequest struct {
	Tema string `json:"tema" validate:"required,oneof=claro oscuro"`
}

type TemaResponse struct {
	Tema string `json:"tema"`
}
