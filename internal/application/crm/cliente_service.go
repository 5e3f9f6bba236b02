package crm

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lojamae/backend/internal/application/authz"
	"github.com/lojamae/backend/internal/domain/crm"
	"github.com/lojamae/backend/internal/domain/identity"
	"github.com/lojamae/backend/internal/domain/shared"
)

// ClienteService manages customer records and their follow-up history
type ClienteService struct {
	clienteRepo  crm.ClienteRepository
	leadRepo     crm.LeadRepository
	followUpRepo crm.FollowUpRepository
	gate         *authz.Gate
	logger       *zap.Logger
}

// NewClienteService creates a new customer service
func NewClienteService(
	clienteRepo crm.ClienteRepository,
	leadRepo crm.LeadRepository,
	followUpRepo crm.FollowUpRepository,
	gate *authz.Gate,
	logger *zap.Logger,
) *ClienteService {
	return &ClienteService{
		clienteRepo:  clienteRepo,
		leadRepo:     leadRepo,
		followUpRepo: followUpRepo,
		gate:         gate,
		logger:       logger,
	}
}

// CreateCliente registers a customer, optionally converting a lead. The
// lead link is recorded so pipeline history survives the conversion.
func (s *ClienteService) CreateCliente(ctx context.Context, session identity.Session, input CreateClienteInput) (*crm.Cliente, error) {
	if err := s.gate.Authorize(session, authz.ActionManageClientes, nil); err != nil {
		return nil, err
	}

	cliente, err := crm.NewCliente(input.Nome, input.Telefone, input.Email, input.Tipo)
	if err != nil {
		return nil, err
	}
	cliente.NomeSocial = input.NomeSocial
	cliente.CPF = input.CPF
	cliente.Sexo = input.Sexo
	cliente.Aniversario = input.Aniversario
	cliente.Endereco = input.Endereco
	cliente.OrigemLead = input.OrigemLead
	cliente.InteresseEm = input.InteresseEm
	cliente.Observacoes = input.Observacoes

	if err := s.clienteRepo.Save(ctx, cliente); err != nil {
		return nil, err
	}

	if input.LeadID != nil {
		lead, err := s.leadRepo.FindByID(ctx, *input.LeadID)
		if err == nil {
			lead.AttachCliente(cliente.ID)
			if err := s.leadRepo.Save(ctx, lead); err != nil {
				s.logger.Error("Failed to attach cliente to lead", zap.Error(err))
			}
		}
	}

	s.logger.Info("Cliente created", zap.String("cliente_id", cliente.ID.String()))
	return cliente, nil
}

// GetCliente returns one customer
func (s *ClienteService) GetCliente(ctx context.Context, session identity.Session, id uuid.UUID) (*crm.Cliente, error) {
	if err := s.gate.Authorize(session, authz.ActionManageClientes, nil); err != nil {
		return nil, err
	}
	return s.clienteRepo.FindByID(ctx, id)
}

// ListClientes returns customers matching the filter
func (s *ClienteService) ListClientes(ctx context.Context, session identity.Session, filter shared.Filter) ([]crm.Cliente, int64, error) {
	if err := s.gate.Authorize(session, authz.ActionManageClientes, nil); err != nil {
		return nil, 0, err
	}
	return s.clienteRepo.FindAll(ctx, filter)
}

// UpdateCliente applies a partial update to a customer
func (s *ClienteService) UpdateCliente(ctx context.Context, session identity.Session, id uuid.UUID, input UpdateClienteInput) (*crm.Cliente, error) {
	if err := s.gate.Authorize(session, authz.ActionManageClientes, nil); err != nil {
		return nil, err
	}
	cliente, err := s.clienteRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Telefone != nil || input.Email != nil {
		telefone := cliente.Telefone
		email := cliente.Email
		if input.Telefone != nil {
			telefone = *input.Telefone
		}
		if input.Email != nil {
			email = *input.Email
		}
		if err := cliente.UpdateContato(telefone, email); err != nil {
			return nil, err
		}
	}
	if input.Endereco != nil {
		cliente.UpdateEndereco(*input.Endereco)
	}
	if input.InteresseEm != nil {
		cliente.InteresseEm = input.InteresseEm
	}
	if input.Observacoes != nil {
		cliente.Observacoes = *input.Observacoes
	}

	if err := s.clienteRepo.Save(ctx, cliente); err != nil {
		return nil, err
	}
	return cliente, nil
}

// AddFollowUp records a contact note against a customer
func (s *ClienteService) AddFollowUp(ctx context.Context, session identity.Session, input AddFollowUpInput) (*crm.FollowUp, error) {
	if err := s.gate.Authorize(session, authz.ActionManageClientes, nil); err != nil {
		return nil, err
	}
	if _, err := s.clienteRepo.FindByID(ctx, input.ClienteID); err != nil {
		return nil, err
	}
	followUp, err := crm.NewFollowUp(input.ClienteID, session.UserID, input.Mensagem)
	if err != nil {
		return nil, err
	}
	if err := s.followUpRepo.Save(ctx, followUp); err != nil {
		return nil, err
	}
	return followUp, nil
}

// ListFollowUps returns the follow-up history of a customer
func (s *ClienteService) ListFollowUps(ctx context.Context, session identity.Session, clienteID uuid.UUID) ([]crm.FollowUp, error) {
	if err := s.gate.Authorize(session, authz.ActionManageClientes, nil); err != nil {
		return nil, err
	}
	return s.followUpRepo.FindByCliente(ctx, clienteID)
}
