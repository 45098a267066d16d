package service

import (
	"context"
	"strings"

	"medishare-backend/internal/domain"
	"medishare-backend/internal/repository"
)

type chatService struct {
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
}

func NewChatService(messageRepo repository.MessageRepository, userRepo repository.UserRepository) ChatService {
	return &chatService{messageRepo: messageRepo, userRepo: userRepo}
}

func (s *chatService) Send(ctx context.Context, senderID, receiverID int32, content string) (*domain.Message, error) {
	content = strings.TrimSpace(content)
	fields := make(map[string]string)
	if content == "" {
		fields["content"] = "message content is required"
	}
	if senderID == receiverID {
		fields["receiver_id"] = "cannot send a message to yourself"
	}
	if len(fields) > 0 {
		return nil, &domain.ValidationError{Fields: fields}
	}
	if _, err := s.userRepo.GetByID(ctx, receiverID); err != nil {
		return nil, err
	}

	msg := &domain.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
	}
	if err := s.messageRepo.Create(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

func (s *chatService) GetConversation(ctx context.Context, userID, otherID int32) ([]domain.Message, error) {
	return s.messageRepo.ListConversation(ctx, userID, otherID)
}

func (s *chatService) ListPartners(ctx context.Context, userID int32) ([]domain.User, error) {
	return s.messageRepo.ListPartners(ctx, userID)
}
