package models

type (
	User struct {
		__TABLE_NAME__ string `users`

		Id       int
		Username string `column:"user_name"`
		Password string `column:"-"`
		secret   string
		note     string `column:"note"`
		Profile
	}

	Profile struct {
		Bio string
	}

	Status int
)
