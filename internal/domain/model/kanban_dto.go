package model

type CreateBoardDTO struct {
	Name string `json:"name" validate:"required"`
}

// UpdateBoardDTO is a partial update. Nil fields are left untouched.
type UpdateBoardDTO struct {
	Name *string `json:"name,omitempty"`
}

func (dto UpdateBoardDTO) IsEmpty() bool {
	return dto.Name == nil
}

type CreateTaskDTO struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

type UpdateTaskDTO struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (dto UpdateTaskDTO) IsEmpty() bool {
	return dto.Name == nil && dto.Description == nil
}

type CreateSubtaskDTO struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Completed   bool   `json:"isCompleted"`
}

type UpdateSubtaskDTO struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Completed   *bool   `json:"isCompleted,omitempty"`
}

func (dto UpdateSubtaskDTO) IsEmpty() bool {
	return dto.Name == nil && dto.Description == nil && dto.Completed == nil
}

type RegisterUserDTO struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// MessageResponse is the body of responses that carry only a message.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Error string `json:"error"`
}
