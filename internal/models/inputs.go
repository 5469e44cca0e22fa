package models

// Request bodies. A nil field means "not supplied" so the same type serves
// create and partial update.

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=user publisher"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateDetailsRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

func (in UpdateDetailsRequest) Apply(u *User) {
	if in.Name != nil {
		u.Name = *in.Name
	}
	if in.Email != nil {
		u.Email = *in.Email
	}
}

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Password string `json:"password" validate:"required,min=6"`
}

// UserInput is the admin view of an account.
type UserInput struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Role     *string `json:"role"`
	Password *string `json:"password" validate:"omitempty,min=6"`
}

func (in UserInput) Apply(u *User) {
	if in.Name != nil {
		u.Name = *in.Name
	}
	if in.Email != nil {
		u.Email = *in.Email
	}
	if in.Role != nil {
		u.Role = *in.Role
	}
}

type ListingInput struct {
	Name          *string  `json:"name"`
	Description   *string  `json:"description"`
	Website       *string  `json:"website"`
	Phone         *string  `json:"phone"`
	Email         *string  `json:"email"`
	Address       *string  `json:"address"`
	Careers       []string `json:"careers"`
	Housing       *bool    `json:"housing"`
	JobAssistance *bool    `json:"jobAssistance"`
	JobGuarantee  *bool    `json:"jobGuarantee"`
	AcceptGi      *bool    `json:"acceptGi"`
}

func (in ListingInput) Apply(l *Listing) {
	setString(&l.Name, in.Name)
	setString(&l.Description, in.Description)
	setString(&l.Website, in.Website)
	setString(&l.Phone, in.Phone)
	setString(&l.Email, in.Email)
	setString(&l.Address, in.Address)
	if in.Careers != nil {
		l.Careers = in.Careers
	}
	setBool(&l.Housing, in.Housing)
	setBool(&l.JobAssistance, in.JobAssistance)
	setBool(&l.JobGuarantee, in.JobGuarantee)
	setBool(&l.AcceptGi, in.AcceptGi)
}

type CourseInput struct {
	Title                *string  `json:"title"`
	Description          *string  `json:"description"`
	Weeks                *int     `json:"weeks"`
	Tuition              *float64 `json:"tuition"`
	MinimumSkill         *string  `json:"minimumSkill"`
	ScholarshipAvailable *bool    `json:"scholarshipAvailable"`
}

func (in CourseInput) Apply(c *Course) {
	setString(&c.Title, in.Title)
	setString(&c.Description, in.Description)
	if in.Weeks != nil {
		c.Weeks = *in.Weeks
	}
	if in.Tuition != nil {
		tuition := *in.Tuition
		c.Tuition = &tuition
	}
	setString(&c.MinimumSkill, in.MinimumSkill)
	setBool(&c.ScholarshipAvailable, in.ScholarshipAvailable)
}

type ReviewInput struct {
	Title  *string `json:"title"`
	Text   *string `json:"text"`
	Rating *int    `json:"rating"`
}

func (in ReviewInput) Apply(r *Review) {
	setString(&r.Title, in.Title)
	setString(&r.Text, in.Text)
	if in.Rating != nil {
		r.Rating = *in.Rating
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}
