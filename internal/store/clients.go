package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const clientsKey = "clients"

func (s *Store) ListClients() ([]Client, error) {
	var clients []Client
	if _, err := s.getJSON(clientsKey, &clients); err != nil {
		return nil, err
	}
	return clients, nil
}

func (s *Store) AddClient(name string) (*Client, error) {
	clients, err := s.ListClients()
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	c := Client{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.setJSON(clientsKey, append(clients, c)); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Store) UpdateClient(client Client) error {
	clients, err := s.ListClients()
	if err != nil {
		return err
	}
	for i := range clients {
		if clients[i].ID == client.ID {
			client.UpdatedAt = time.Now().UTC()
			clients[i] = client
			return s.setJSON(clientsKey, clients)
		}
	}
	return fmt.Errorf("update client: no client with id %q", client.ID)
}

func (s *Store) DeleteClient(id string) error {
	clients, err := s.ListClients()
	if err != nil {
		return err
	}
	kept := clients[:0]
	for _, c := range clients {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	if kept == nil {
		kept = []Client{}
	}
	return s.setJSON(clientsKey, kept)
}
