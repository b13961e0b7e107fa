package repository

type Repository struct {
	Option    OptionRepository
	Transient TransientRepository
}

func NewRepository(option OptionRepository, transient TransientRepository) *Repository {
	return &Repository{
		Option:    option,
		Transient: transient,
	}
}
