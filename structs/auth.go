package structs

type SignUpRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type VerifyEmailRequest struct {
	Email            string `json:"email" binding:"required,email"`
	ConfirmationCode string `json:"confirmationCode" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type UpdateProfileRequest struct {
	DisplayName string `json:"displayName"`
	Bio         string `json:"bio"`
}

type ChangeUsernameRequest struct {
	Username string `json:"username" binding:"required"`
}

type CreateNoteRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

type QuizAnswerRequest struct {
	QuestionIndex int `json:"questionIndex" binding:"min=0"`
	Choice        int `json:"choice" binding:"min=0"`
}

type RecordActionRequest struct {
	Action string `json:"action" binding:"required"`
}
